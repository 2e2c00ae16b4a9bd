package entries

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dreamlog/internal/cli"
)

type ShowCmd struct {
	ID   string `arg:"" help:"ID of the dream to show."`
	JSON bool   `help:"Print the stored record as JSON." name:"json"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	id, err := cli.ParseID(c.ID)
	if err != nil {
		return err
	}
	e, err := ctx.FindEntry(id)
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal dream: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Printf("%s", cli.Detail(e))
	return nil
}
