// Package cli implements fundctl, the platform operator's command line
// tool. It is a thin client over the service's HTTP API; the operator
// identity is sent as the opaque caller header the service expects.
package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
)

// Environment provides an abstraction around the execution environment.
type Environment struct {
	Stderr io.Writer
	Stdout io.Writer
	Stdin  io.Reader
}

type SetTaxCmd struct {
	Percent int64 `required:"" help:"Platform fee percentage (0-100) applied on payouts."`
}

func (cmd *SetTaxCmd) Run(env *Environment, client *Client) error {
	if err := client.SetTax(cmd.Percent); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "tax set to %d%%\n", cmd.Percent)
	return nil
}

type EmergencyCmd struct{}

func (cmd *EmergencyCmd) Run(env *Environment, client *Client) error {
	state, err := client.ToggleEmergency()
	if err != nil {
		return err
	}
	if state {
		fmt.Fprintln(env.Stdout, "emergency mode is now ON: normal operations suspended")
	} else {
		fmt.Fprintln(env.Stdout, "emergency mode is now OFF: normal operations resumed")
	}
	return nil
}

type RefundRangeCmd struct {
	Start uint64 `required:"" help:"First campaign id in the inclusive refund range."`
	End   uint64 `required:"" help:"Last campaign id in the inclusive refund range."`
}

func (cmd *RefundRangeCmd) Run(env *Environment, client *Client) error {
	if err := client.EmergencyRefundRange(cmd.Start, cmd.End); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "campaigns %d-%d refunded\n", cmd.Start, cmd.End)
	return nil
}

type HaltDeadlineCmd struct {
	ID uint64 `arg:"" help:"Campaign id whose deadline should be force-expired."`
}

func (cmd *HaltDeadlineCmd) Run(env *Environment, client *Client) error {
	if err := client.HaltDeadline(cmd.ID); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "campaign %d deadline halted\n", cmd.ID)
	return nil
}

type ListCmd struct{}

func (cmd *ListCmd) Run(env *Environment, client *Client) error {
	campaigns, err := client.ListCampaigns()
	if err != nil {
		return err
	}
	for _, c := range campaigns {
		status := "open"
		if c.PaidOut {
			status = "paid out"
		}
		fmt.Fprintf(env.Stdout, "#%d %q owner=%s collected=%d/%d deadline=%s (%s)\n",
			c.ID, c.Title, c.Owner, c.AmountCollected, c.Target, c.Deadline.Format("2006-01-02"), status)
	}
	return nil
}

type CLI struct {
	Server string `env:"FUNDVAULT_SERVER" default:"http://localhost:8080" help:"Base URL of the fundvault service."`
	As     string `env:"FUNDVAULT_CALLER" required:"" help:"Caller identity sent with every request."`

	SetTax       SetTaxCmd       `cmd:"" help:"Set the platform fee percentage."`
	Emergency    EmergencyCmd    `cmd:"" help:"Toggle the platform-wide emergency flag."`
	RefundRange  RefundRangeCmd  `cmd:"" help:"Mass-refund every campaign in an id range (emergency mode only)."`
	HaltDeadline HaltDeadlineCmd `cmd:"" help:"Force-expire a campaign's deadline."`
	List         ListCmd         `cmd:"" help:"List live campaigns."`
}

// Run parses arguments and executes the selected command. It returns a
// process exit code.
func Run(env Environment) int {
	app := CLI{}

	cntx := kong.Parse(&app,
		kong.Description("fundvault platform operations"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	client := NewClient(app.Server, app.As)
	cntx.Bind(client)

	err := cntx.Run(&env)
	cntx.FatalIfErrorf(err)

	return 0
}
