package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/config"
	"github.com/llehouerou/tunedeck/internal/player"
	"github.com/llehouerou/tunedeck/internal/prefs"
	"github.com/llehouerou/tunedeck/internal/search"
)

func newCatalogCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the configured tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(*configPath)
			if err != nil {
				return err
			}
			durations := catalog.ProbeDurations(cmd.Context(), cat, player.ProbeDuration)
			printTracks(cmd.OutOrStdout(), cat.WithDurations(durations).Tracks())
			return nil
		},
	}
}

func newSearchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Print the tracks whose title or artist matches query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(*configPath)
			if err != nil {
				return err
			}
			matches := search.Filter(cat.Tracks(), strings.Join(args, " "))
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracks match")
				return nil
			}
			printTracks(cmd.OutOrStdout(), matches)
			return nil
		},
	}
}

func newPrefsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or reset stored preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(*configPath, func(m *prefs.Manager) error {
				printPrefs(cmd.OutOrStdout(), m.Load())
				return nil
			})
		},
	})

	cmd.AddCommand(newPrefsSetCmd(configPath))

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete every stored preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(*configPath, func(m *prefs.Manager) error {
				if err := m.Reset(cmd.Context()); err != nil {
					return fmt.Errorf("reset preferences: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Preferences reset")
				return nil
			})
		},
	})

	return cmd
}

func newPrefsSetCmd(configPath *string) *cobra.Command {
	var (
		volume          int
		shuffle, repeat bool
		theme           string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Write one or more preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			var u prefs.Update
			if flags.Changed("volume") {
				if volume < 0 || volume > 100 {
					return fmt.Errorf("volume %d out of range 0-100", volume)
				}
				v := float64(volume) / 100
				u.Volume = &v
			}
			if flags.Changed("shuffle") {
				u.Shuffle = &shuffle
			}
			if flags.Changed("repeat") {
				u.Repeat = &repeat
			}
			if flags.Changed("theme") {
				t := prefs.Theme(theme)
				u.Theme = &t
			}
			if u == (prefs.Update{}) {
				return errors.New("nothing to set; pass --volume, --shuffle, --repeat or --theme")
			}

			return withManager(*configPath, func(m *prefs.Manager) error {
				if err := m.Apply(cmd.Context(), u); err != nil {
					return fmt.Errorf("set preferences: %w", err)
				}
				printPrefs(cmd.OutOrStdout(), m.Load())
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&volume, "volume", 0, "volume in percent (0-100)")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "shuffle mode")
	cmd.Flags().BoolVar(&repeat, "repeat", false, "repeat mode")
	cmd.Flags().StringVar(&theme, "theme", "", "theme (dark or light)")
	return cmd
}

func loadCatalog(configPath string) (*catalog.Catalog, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cat, err := catalog.Load(cfg)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func withManager(configPath string, fn func(*prefs.Manager) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := prefs.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer store.Close()
	return fn(prefs.NewManager(store, nil))
}

func printTracks(w io.Writer, tracks []catalog.Track) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "TITLE", "ARTIST", "LENGTH", "SIZE")

	for i, track := range tracks {
		t.Row(
			strconv.Itoa(i+1),
			track.ID,
			track.Title,
			track.Artist,
			catalog.FormatDuration(track.Duration),
			fileSize(track.MediaRef),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "missing"
	}
	return humanize.Bytes(uint64(info.Size())) //nolint:gosec // sizes are non-negative
}

func printPrefs(w io.Writer, p prefs.Preferences) {
	fmt.Fprintf(w, "volume     %d%%\n", int(p.Volume*100+0.5))
	fmt.Fprintf(w, "shuffle    %t\n", p.Shuffle)
	fmt.Fprintf(w, "repeat     %t\n", p.Repeat)
	fmt.Fprintf(w, "theme      %s\n", p.Theme)
	fmt.Fprintf(w, "favorites  %s\n", listOrNone(p.Favorites))
	fmt.Fprintf(w, "recents    %s\n", listOrNone(p.Recents))
}

func listOrNone(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
