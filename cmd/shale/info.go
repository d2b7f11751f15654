package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show repository information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := connect()
		if err != nil {
			fmt.Printf("Error connecting: %v\n", err)
			os.Exit(1)
		}

		info, err := s.RepositoryInfo(context.Background())
		if err != nil {
			fmt.Printf("Error fetching repository info: %v\n", err)
			os.Exit(1)
		}

		if infoJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(info); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		fmt.Printf("id:           %s\n", info.ID)
		fmt.Printf("name:         %s\n", info.Name)
		if info.Description != "" {
			fmt.Printf("description:  %s\n", info.Description)
		}
		fmt.Printf("root folder:  %s\n", info.RootFolderID)
		fmt.Printf("product:      %s\n", info.ProductName)
		if info.VendorName != "" {
			fmt.Printf("vendor:       %s\n", info.VendorName)
		}
		fmt.Printf("cmis version: %s\n", info.CMISVersion)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output in JSON format")
}
