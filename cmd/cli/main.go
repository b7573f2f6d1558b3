package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	ownerID string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tfsa-cli",
		Short: "TFSA tracker CLI tool",
		Long:  `A command line interface for interacting with the TFSA tracker API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the TFSA tracker API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", "", "Owner ID (defaults to the server's default owner)")

	rootCmd.AddCommand(summaryCmd(), valuationCmd(), quoteCmd(), fxCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the contribution-room summary",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/summary")
		},
	}
}

func valuationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "valuation",
		Short: "Show the portfolio valuation",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/valuation")
		},
	}
}

func quoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote SYMBOL",
		Short: "Look up a market quote",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/quote?symbol=" + url.QueryEscape(args[0]))
		},
	}
}

func fxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fx BASE TARGET",
		Short: "Look up an exchange rate",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint(fmt.Sprintf("/api/v1/fx?base=%s&target=%s",
				url.QueryEscape(args[0]), url.QueryEscape(args[1])))
		},
	}
}

func getAndPrint(path string) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if ownerID != "" {
		req.Header.Set("X-Owner-ID", ownerID)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(body), 500))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
