package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(daysCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(newRoundCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(importCmd)
}

// dateArg returns the first argument or "today".
func dateArg(args []string) string {
	if len(args) == 0 {
		return "today"
	}
	return args[0]
}

func dayEndpoint(date, suffix string) string {
	return "/api/days/" + url.PathEscape(date) + suffix
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/metrics", nil)
	},
}

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List the stored game days, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/api/days", nil)
	},
}

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show a game day (defaults to today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, dayEndpoint(dateArg(args), ""), nil)
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster <date> <player>...",
	Short: "Replace the roster of a game day",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string][]string{"players": args[1:]}
		return performJSONRequest(cmd.OutOrStdout(), http.MethodPut, dayEndpoint(args[0], "/players"), body)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [date|all-time]",
	Short: "Show the ranking and superlatives of a day or of all time",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/api/stats/"+url.PathEscape(dateArg(args)), nil)
	},
}

var announceCmd = &cobra.Command{
	Use:   "announce [date|all-time]",
	Short: "Post the leaderboard of a day or of all time to Slack",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/api/stats/"+url.PathEscape(dateArg(args))+"/announce", nil)
	},
}

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard [date]",
	Short: "Show the players-by-rounds scoreboard of a day",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, dayEndpoint(dateArg(args), "/scoreboard"), nil)
	},
}

var roundsCmd = &cobra.Command{
	Use:   "rounds [date]",
	Short: "List the round details of a day",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, dayEndpoint(dateArg(args), "/rounds"), nil)
	},
}

func newRoundCmd() *cobra.Command {
	var (
		players       []string
		friends       []string
		hostPlayer    string
		mode          string
		bid           int
		noBids        bool
		opponentScore string
		date          string
	)
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Record a round for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"players":       players,
				"host":          hostPlayer,
				"friends":       friends,
				"gameMode":      mode,
				"bid":           bid,
				"noBids":        noBids,
				"opponentScore": round.ParseOpponentScore(opponentScore),
			}
			return performJSONRequest(cmd.OutOrStdout(), http.MethodPost, dayEndpoint(date, "/rounds"), body)
		},
	}
	cmd.Flags().StringSliceVar(&players, "players", nil, "The six players of the round")
	cmd.Flags().StringVar(&hostPlayer, "host-player", "", "The player who won the bid")
	cmd.Flags().StringSliceVar(&friends, "friends", nil, "The host's friends, at most two")
	cmd.Flags().StringVar(&mode, "mode", "normal", "The game mode, normal or 1v5")
	cmd.Flags().IntVar(&bid, "bid", 80, "The winning bid")
	cmd.Flags().BoolVar(&noBids, "no-bids", false, "Nobody bid, the round is played against 160")
	cmd.Flags().StringVar(&opponentScore, "opponent-score", "0", "Points taken by the opponents, e.g. 60 or 60pts")
	cmd.Flags().StringVar(&date, "date", "today", "The game day to record the round on")
	_ = cmd.MarkFlagRequired("players")
	_ = cmd.MarkFlagRequired("host-player")
	return cmd
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download every game day as a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return performRequest(cmd.OutOrStdout(), http.MethodGet, "/api/export", nil)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()
			return fetchTo(f, "/api/export")
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the document to this file instead of stdout")
	return cmd
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace every game day with a previously exported document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/api/import", bytes.NewReader(data))
	},
}

func requestURL(endpoint string) string {
	u := strings.TrimRight(host, "/") + endpoint
	if dryRun {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		u += sep + "dry_run=true"
	}
	return u
}

func performJSONRequest(out io.Writer, method, endpoint string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return performRequest(out, method, endpoint, bytes.NewReader(data))
}

func performRequest(out io.Writer, method, endpoint string, body io.Reader) error {
	url := requestURL(endpoint)
	fmt.Fprintf(out, "Making request to %s\n", url)

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(respBody))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

// fetchTo copies a GET response body to w without any framing.
func fetchTo(w io.Writer, endpoint string) error {
	resp, err := http.Get(requestURL(endpoint))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}
