package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
)

// ScansCmd manages the saved scans
type ScansCmd struct {
	Delete ScansDeleteCmd `cmd:"delete" aliases:"del" help:"Delete a saved scan"`
	List   ScansListCmd   `cmd:"list" help:"List saved scans" default:"1"`
	Verify ScansVerifyCmd `cmd:"verify" help:"Open every saved scan and report its node count"`
}

// ScansListCmd lists the saved scans
type ScansListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

type scanJSON struct {
	CreatedAt    string `json:"created_at"`
	LastOpenedAt string `json:"last_opened_at,omitempty"`
	Name         string `json:"name"`
	Nodes        int    `json:"nodes"`
	Path         string `json:"path"`
	SizeBytes    int64  `json:"size_bytes"`
	UpdatedAt    string `json:"updated_at"`
}

// Run executes the list command
func (s *ScansListCmd) Run(cli *CLI) error {
	library, err := cli.Container.Library()
	if err != nil {
		return err
	}

	scans, err := library.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}
	logging.Logger.Debug("Scans listed", "count", len(scans))

	if s.Format == "json" {
		output := lo.Map(scans, func(sc domain.Scan, _ int) scanJSON {
			entry := scanJSON{
				CreatedAt: sc.CreatedAt.Format(time.RFC3339),
				Name:      sc.Name,
				Nodes:     sc.Nodes,
				Path:      sc.Path,
				SizeBytes: sc.SizeBytes,
				UpdatedAt: sc.UpdatedAt.Format(time.RFC3339),
			}
			if sc.LastOpenedAt != nil {
				entry.LastOpenedAt = sc.LastOpenedAt.Format(time.RFC3339)
			}
			return entry
		})
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(scans) == 0 {
		fmt.Printf("No saved scans in %s\n", cli.Container.ScansDir)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Nodes", "Size", "Updated", "Last Opened"})
	for _, sc := range scans {
		lastOpened := "never"
		if sc.LastOpenedAt != nil {
			lastOpened = humanize.Time(*sc.LastOpenedAt)
		}
		t.AppendRow(table.Row{
			sc.Name,
			humanize.Comma(int64(sc.Nodes)),
			humanize.Bytes(uint64(sc.SizeBytes)),
			humanize.Time(sc.UpdatedAt),
			lastOpened,
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d scan(s)", len(scans)), "", humanize.Bytes(uint64(lo.SumBy(scans, func(sc domain.Scan) int64 { return sc.SizeBytes })))})
	t.Render()
	return nil
}

// ScansDeleteCmd deletes a saved scan
type ScansDeleteCmd struct {
	Force bool   `help:"Force deletion without confirmation" short:"f"`
	Name  string `arg:"" help:"Name of the scan to delete"`
}

// Run executes the delete command
func (s *ScansDeleteCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing scans delete command", "scan", s.Name, "force", s.Force)

	ws, err := cli.Container.Workspace()
	if err != nil {
		return err
	}
	// No capture session may have the scan open
	lock, err := ws.Lock()
	if errors.Is(err, domain.ErrWorkspaceLocked) {
		return fmt.Errorf("a capture session is using %s, close it first", ws.Root())
	}
	if err != nil {
		return err
	}
	defer lock.Release()

	if !s.Force && !s.confirmDeletion() {
		return nil
	}

	library, err := cli.Container.Library()
	if err != nil {
		return err
	}
	if err := library.Delete(context.Background(), s.Name); err != nil {
		logging.Logger.Error("Failed to delete scan", "scan", s.Name, "error", err)
		return fmt.Errorf("failed to delete scan: %w", err)
	}

	fmt.Printf("Scan '%s' deleted successfully\n", s.Name)
	return nil
}

func (s *ScansDeleteCmd) confirmDeletion() bool {
	fmt.Printf("WARNING: This will delete scan '%s' and its database\n", s.Name)
	fmt.Print("\nContinue? (y/N): ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		logging.Logger.Info("User cancelled scan deletion", "scan", s.Name)
		fmt.Println("Cancelled")
		return false
	}
	return true
}

// ScansVerifyCmd opens every saved scan
type ScansVerifyCmd struct{}

// Run executes the verify command. It fails when a scan cannot be read.
func (s *ScansVerifyCmd) Run(cli *CLI) error {
	library, err := cli.Container.Library()
	if err != nil {
		return err
	}

	checks, err := library.Verify(context.Background())
	if err != nil {
		return err
	}
	if len(checks) == 0 {
		fmt.Printf("No saved scans in %s\n", cli.Container.ScansDir)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Nodes", "Status"})
	for _, check := range checks {
		status := "ok"
		if !check.OK() {
			status = check.Err.Error()
		}
		t.AppendRow(table.Row{check.Name, humanize.Comma(int64(check.Nodes)), status})
	}
	t.Render()

	failed := lo.CountBy(checks, func(c domain.ScanCheck) bool { return !c.OK() })
	if failed > 0 {
		return fmt.Errorf("%d of %d scan(s) could not be read", failed, len(checks))
	}
	return nil
}
