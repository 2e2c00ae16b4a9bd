package entries

import (
	"fmt"

	"github.com/julianstephens/dreamlog/internal/cli"
	"github.com/julianstephens/dreamlog/internal/dreamlist"
	"github.com/julianstephens/dreamlog/internal/navigation"
)

type DeleteCmd struct {
	ID string `arg:"" help:"ID of the dream to delete."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	id, err := cli.ParseID(c.ID)
	if err != nil {
		return err
	}
	e, err := ctx.FindEntry(id)
	if err != nil {
		return err
	}

	vm := dreamlist.New(ctx.Repo, navigation.Noop{})
	vm.DeleteEntry(ctx.Ctx(), id)

	ctx.Printf("Deleted dream from %s (ID: %d)\n", e.SelectedDate, id)
	return nil
}

type ClearCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	vm := dreamlist.New(ctx.Repo, navigation.Noop{})
	vm.Refresh(ctx.Ctx())

	if vm.Count() == 0 {
		ctx.Println("No dreams to clear")
		return nil
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete all %d dreams?", vm.Count()))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Clear cancelled.")
			return nil
		}
	}

	n := vm.Count()
	vm.ClearAll(ctx.Ctx())
	ctx.Printf("Cleared %d dreams\n", n)
	return nil
}
