package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	entriesCmd := &cobra.Command{Use: "entries", Short: "Journal entry operations"}

	// add from a raw payload file or free text
	var payloadFile, text, response string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry from a payload file or free text",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (payloadFile == "") == (text == "") {
				return fmt.Errorf("exactly one of --file or --text required")
			}
			if text != "" {
				data, err := doPostJSON(apiFlag+"/api/entries/text", map[string]string{
					"text":     text,
					"response": response,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(os.Stdout, string(data))
				return nil
			}

			raw, err := os.ReadFile(payloadFile)
			if err != nil {
				return err
			}
			var entry map[string]interface{}
			if err := json.Unmarshal(raw, &entry); err != nil {
				return fmt.Errorf("payload file is not a JSON object: %w", err)
			}
			data, err := doPostJSON(apiFlag+"/api/entries", map[string]interface{}{
				"entry":    entry,
				"response": response,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&payloadFile, "file", "f", "", "Path to a JSON entry payload")
	addCmd.Flags().StringVarP(&text, "text", "t", "", "Free text to record as a conversation entry")
	addCmd.Flags().StringVarP(&response, "response", "r", "", "Response to pair with the entry")
	entriesCmd.AddCommand(addCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries in insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/entries")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	entriesCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get ENTRY_ID",
		Short: "Get an entry by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/entries/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	entriesCmd.AddCommand(getCmd)

	lastCmd := &cobra.Command{
		Use:   "last",
		Short: "Show the most recent entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/entries/last")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	entriesCmd.AddCommand(lastCmd)

	fetchCmd := &cobra.Command{
		Use:   "fetch-resources ENTRY_ID",
		Short: "Download the remote resources referenced by an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON(apiFlag+"/api/entries/"+args[0]+"/resources", map[string]string{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	entriesCmd.AddCommand(fetchCmd)

	rootCmd.AddCommand(entriesCmd)

	interactionsCmd := &cobra.Command{
		Use:   "interactions",
		Short: "List recorded interactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/interactions")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(interactionsCmd)
}
