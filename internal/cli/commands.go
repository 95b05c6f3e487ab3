package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/idilsaglam/items/internal/devserver"
	"github.com/idilsaglam/items/internal/logging"
	"github.com/idilsaglam/items/internal/model"
	"github.com/idilsaglam/items/internal/store/jsonstore"
	"github.com/idilsaglam/items/internal/tui"
	"github.com/idilsaglam/items/internal/ui"
)

func (r *runner) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive manager (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTUI(cmd)
		},
	}
}

func (r *runner) runTUI(cmd *cobra.Command) error {
	path, err := r.logFile()
	if err != nil {
		return &exitError{code: 1, msg: "log: " + err.Error()}
	}
	logger, closer, err := logging.File(r.cfg.LogLevel, path)
	if err != nil {
		return &exitError{code: 1, msg: "log: " + err.Error()}
	}
	defer closer.Close()

	s, err := r.newShell(logger)
	if err != nil {
		return err
	}
	if err := tui.Run(cmd.Context(), s, logger); err != nil {
		return &exitError{code: 1, msg: "tui: " + err.Error()}
	}
	return nil
}

func (r *runner) lsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.newShell(r.consoleLogger(cmd))
			if err != nil {
				return err
			}
			s.Load(cmd.Context())
			if err := reportBanner(cmd, s); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s.Items())
			}
			fmt.Fprintln(out, ui.Panel(ui.ListLines(s.Items(), outputWidth()-6)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print items as JSON")
	return cmd
}

func (r *runner) addCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:     "add <title...>",
		Short:   "Create an item (title can be multiple words)",
		Example: `  items add "Buy milk" -d "2 liters"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dto := model.CreateItemDto{Title: strings.TrimSpace(strings.Join(args, " "))}
			if err := dto.Validate(); err != nil {
				return usageErr("add: empty title")
			}
			if cmd.Flags().Changed("description") {
				dto.Description = model.Ptr(description)
			}

			s, err := r.newShell(r.consoleLogger(cmd))
			if err != nil {
				return err
			}
			s.Create(cmd.Context(), dto)
			if err := reportBanner(cmd, s); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "added "+s.Items()[0].ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "item description")
	return cmd
}

func (r *runner) editCmd() *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Update an item; only the fields given are sent",
		Example: `  items edit 3f2a... --title "Buy oat milk"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dto model.UpdateItemDto
			if cmd.Flags().Changed("title") {
				dto.Title = model.Ptr(title)
			}
			if cmd.Flags().Changed("description") {
				dto.Description = model.Ptr(description)
			}
			if dto.Title == nil && dto.Description == nil {
				return usageErr("edit: nothing to change (use --title and/or --description)")
			}

			s, err := r.newShell(r.consoleLogger(cmd))
			if err != nil {
				return err
			}
			s.Update(cmd.Context(), args[0], dto)
			if err := reportBanner(cmd, s); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	return cmd
}

func (r *runner) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.newShell(r.consoleLogger(cmd))
			if err != nil {
				return err
			}
			s.Delete(cmd.Context(), args[0])
			if err := reportBanner(cmd, s); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}

func (r *runner) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all items to a JSON file (default ./items.json)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := pathArg(args)
			if err != nil {
				return err
			}
			s, err := r.newShell(r.consoleLogger(cmd))
			if err != nil {
				return err
			}
			s.Load(cmd.Context())
			if err := reportBanner(cmd, s); err != nil {
				return err
			}
			if err := jsonstore.Save(path, s.Items()); err != nil {
				return &exitError{code: 1, msg: "save: " + err.Error()}
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("exported %d items to %s", len(s.Items()), path))
			return nil
		},
	}
}

func (r *runner) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Create an item for every entry of a JSON file (default ./items.json)",
		Long: `Create an item for every entry of a JSON file (default ./items.json).

Only title and description are sent; the server assigns new ids and timestamps.
Entries are created oldest first so the listing keeps the file's order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := pathArg(args)
			if err != nil {
				return err
			}
			entries, err := jsonstore.Load(path)
			if err != nil {
				return &exitError{code: 1, msg: "load: " + err.Error()}
			}

			s, err := r.newShell(r.consoleLogger(cmd))
			if err != nil {
				return err
			}
			var created, skipped int
			for i := len(entries) - 1; i >= 0; i-- {
				dto := model.CreateItemDto{Title: entries[i].Title}
				if dto.Validate() != nil {
					skipped++
					continue
				}
				if entries[i].Description != "" {
					dto.Description = model.Ptr(entries[i].Description)
				}
				before := len(s.Items())
				s.Create(cmd.Context(), dto)
				if len(s.Items()) > before {
					created++
				}
			}
			if err := reportBanner(cmd, s); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "imported %d of %d items\n", created, len(entries))
				return err
			}
			msg := fmt.Sprintf("imported %d items from %s", created, path)
			if skipped > 0 {
				msg += fmt.Sprintf(" (%d without title skipped)", skipped)
			}
			ui.OK(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func (r *runner) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory items API for local development",
		Long: `Run an in-memory items API for local development.

It implements GET/POST /items and PUT/DELETE /items/{id}. When a token is
configured, requests must carry it as a bearer token. Nothing is persisted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := r.consoleLogger(cmd)
			err := devserver.ListenAndServe(cmd.Context(), r.cfg.Serve.Addr, logger, devserver.Options{
				Token:          r.cfg.Token,
				RateLimitRPS:   r.cfg.Serve.RateLimitRPS,
				RateLimitBurst: r.cfg.Serve.RateLimitBurst,
			})
			if err != nil {
				return &exitError{code: 1, msg: "serve: " + err.Error()}
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8787)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "items "+Version)
			return nil
		},
	}
}

func pathArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	p, err := jsonstore.DefaultPath()
	if err != nil {
		return "", &exitError{code: 1, msg: err.Error()}
	}
	return p, nil
}

func outputWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
