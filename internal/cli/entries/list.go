package entries

import (
	"github.com/julianstephens/dreamlog/internal/cli"
	"github.com/julianstephens/dreamlog/internal/dreamlist"
	"github.com/julianstephens/dreamlog/internal/navigation"
)

type ListCmd struct {
	Query   string `short:"q" help:"Only show dreams matching this text."`
	ShowIDs bool   `help:"Show dream IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	vm := dreamlist.New(ctx.Repo, navigation.Noop{})
	vm.Refresh(ctx.Ctx())
	vm.SetQuery(c.Query)

	if vm.Count() == 0 {
		ctx.Println("No dreams recorded yet")
		return nil
	}

	ctx.Println(cli.CountLabel(vm.Count()))
	printEntries(ctx, vm, c.ShowIDs)
	return nil
}

type SearchCmd struct {
	Query   string `arg:"" help:"Text to look for in dream text, type and tags."`
	ShowIDs bool   `help:"Show dream IDs." name:"show-ids"`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	vm := dreamlist.New(ctx.Repo, navigation.Noop{})
	vm.Refresh(ctx.Ctx())
	vm.SetQuery(c.Query)

	matches := len(vm.Entries())
	if matches == 1 {
		ctx.Printf("1 match for %q\n", c.Query)
	} else {
		ctx.Printf("%d matches for %q\n", matches, c.Query)
	}
	printEntries(ctx, vm, c.ShowIDs)
	return nil
}

func printEntries(ctx *cli.Context, vm *dreamlist.ViewModel, showIDs bool) {
	for _, e := range vm.Entries() {
		ctx.Printf("  %s\n", cli.Summary(e, showIDs))
	}
}
