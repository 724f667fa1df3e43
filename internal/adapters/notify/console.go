// Package notify renders fleet status to the console.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/dmarban/solagent/internal/domain"
	"github.com/dmarban/solagent/internal/ports"
)

const recentActivities = 3

// Console implements ports.Notifier. With table enabled it prints a full
// fleet table plus each agent's recent activity; otherwise a compact
// one-liner.
type Console struct {
	out     io.Writer
	wallets ports.WalletProvider
	table   bool
}

// NewConsole creates a notifier that writes to stdout.
func NewConsole(wallets ports.WalletProvider, table bool) *Console {
	return &Console{out: os.Stdout, wallets: wallets, table: table}
}

// NewConsoleWriter creates a notifier with an injected writer, for tests.
func NewConsoleWriter(w io.Writer, wallets ports.WalletProvider, table bool) *Console {
	return &Console{out: w, wallets: wallets, table: table}
}

// Notify prints the fleet in the configured mode.
func (c *Console) Notify(ctx context.Context, agents []domain.Agent) error {
	if len(agents) == 0 {
		fmt.Fprintf(c.out, "[%s] no agents\n", time.Now().Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printFull(ctx, agents)
	} else {
		c.printCompact(agents)
	}
	return nil
}

// printCompact prints one line with fleet counts and last actions.
func (c *Console) printCompact(agents []domain.Agent) {
	active := 0
	for _, a := range agents {
		if a.Status == domain.StatusActive {
			active++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d agents → active:%d stopped:%d",
		time.Now().Format("15:04:05"), len(agents), active, len(agents)-active)

	for _, a := range agents {
		fmt.Fprintf(&sb, " | %s %s %s", a.Name, statusIcon(a.Status), lastAction(a))
	}
	fmt.Fprintln(c.out, sb.String())
}

// printFull prints the fleet table and recent activity per agent.
func (c *Console) printFull(ctx context.Context, agents []domain.Agent) {
	fmt.Fprintf(c.out, "\n=== AGENT FLEET @ %s ===\n", time.Now().Format("15:04:05"))

	tbl := tablewriter.NewWriter(c.out)
	tbl.Header("Name", "Status", "Strategy", "Wallet", "Balance", "Tokens", "Last", "Log")

	for _, a := range agents {
		balance := "-"
		tokens := "-"
		if b, err := c.wallets.GetBalance(ctx, a.WalletPublicKey); err == nil {
			balance = fmt.Sprintf("%.4f", b)
		}
		if tb, err := c.wallets.GetTokenBalances(ctx, a.WalletPublicKey); err == nil {
			tokens = fmt.Sprintf("%d", len(tb))
		}
		tbl.Append(
			a.Name,
			string(a.Status),
			a.Strategy.Kind,
			shortKey(a.WalletPublicKey),
			balance,
			tokens,
			lastAction(a),
			fmt.Sprintf("%d", len(a.Activities)),
		)
	}
	tbl.Render()

	for _, a := range agents {
		if len(a.Activities) == 0 {
			continue
		}
		fmt.Fprintf(c.out, "\n  %s:\n", a.Name)
		start := len(a.Activities) - recentActivities
		if start < 0 {
			start = 0
		}
		for _, act := range a.Activities[start:] {
			line := fmt.Sprintf("    %s %-7s %s %s",
				act.Timestamp.Format("15:04:05"), act.Action, resultIcon(act.Result), act.Reason)
			if act.Signature != "" {
				line += " sig=" + shortKey(act.Signature)
			}
			fmt.Fprintln(c.out, line)
		}
	}
	fmt.Fprintln(c.out)
}

func lastAction(a domain.Agent) string {
	if len(a.Activities) == 0 {
		return "-"
	}
	return a.Activities[len(a.Activities)-1].Action
}

func statusIcon(s domain.AgentStatus) string {
	if s == domain.StatusActive {
		return "▶"
	}
	return "■"
}

func resultIcon(r domain.ActivityResult) string {
	if r == domain.ResultFailure {
		return "✗"
	}
	return "✓"
}

func shortKey(k string) string {
	if len(k) <= 12 {
		return k
	}
	return k[:6] + ".." + k[len(k)-4:]
}
