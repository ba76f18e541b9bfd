package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/juegoya/juegoya/internal/auth"
	"github.com/spf13/cobra"
)

var (
	sportFilter      string
	preferSubstitute bool
	tokenEmail       string
	tokenTTL         time.Duration
)

func init() {
	matchesCmd.Flags().StringVar(&sportFilter, "sport", "", "Only list matches of this sport")
	joinCmd.Flags().BoolVar(&preferSubstitute, "substitute", false, "Join as a substitute even if there are open slots")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim for the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "How long the token is valid")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(tokenCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List open matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/matches"
		if sportFilter != "" {
			endpoint += "?sport=" + url.QueryEscape(sportFilter)
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var matchCmd = &cobra.Command{
	Use:   "match [id]",
	Short: "Show a match and its roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches/"+url.PathEscape(args[0]), nil)
	},
}

var joinCmd = &cobra.Command{
	Use:   "join [id]",
	Short: "Join a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]bool{"prefer_substitute": preferSubstitute}
		return performRequest(http.MethodPost, "/matches/"+url.PathEscape(args[0])+"/join", body)
	},
}

var leaveCmd = &cobra.Command{
	Use:   "leave [id]",
	Short: "Leave a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/matches/"+url.PathEscape(args[0])+"/leave", nil)
	},
}

var confirmCmd = &cobra.Command{
	Use:   "confirm [id]",
	Short: "Confirm attendance to a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/matches/"+url.PathEscape(args[0])+"/confirm", nil)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a match you organized",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/matches/"+url.PathEscape(args[0]), nil)
	},
}

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your upcoming, past and organized matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/me/matches", nil)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token [user-id]",
	Short: "Issue a session token signed with JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}
		signed, err := auth.NewAuthenticator(secret).Issue(args[0], tokenEmail, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Println(signed)
		return nil
	},
}

func performRequest(method, endpoint string, payload any) error {
	target := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
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

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
