package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/shale"
	"github.com/spf13/cobra"
)

var statByID bool

var statCmd = &cobra.Command{
	Use:   "stat <path-or-id>",
	Short: "Show an object's properties",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := connect()
		if err != nil {
			fmt.Printf("Error connecting: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		octx := s.NewOperationContext()
		octx.IncludeAllowableActions = true

		var obj shale.Object
		if statByID {
			obj, err = s.GetObject(ctx, args[0], octx)
		} else {
			obj, err = s.GetObjectByPath(ctx, args[0], octx)
		}
		if err != nil {
			fmt.Printf("Error fetching %s: %v\n", args[0], err)
			os.Exit(1)
		}

		fmt.Printf("id:        %s\n", obj.ID())
		fmt.Printf("type:      %s\n", obj.ObjectType().ID())
		fmt.Printf("base type: %s\n", obj.BaseType())
		fmt.Printf("name:      %s\n", obj.Name())

		ids := obj.PropertyIDs()
		sort.Strings(ids)
		fmt.Println("properties:")
		for _, id := range ids {
			p, ok := obj.Property(id)
			if !ok {
				continue
			}
			var parts []string
			for _, v := range p.Values() {
				parts = append(parts, fmt.Sprintf("%v", v))
			}
			fmt.Printf("  %-34s %s\n", id, strings.Join(parts, ", "))
		}

		if actions := obj.AllowableActions(); len(actions) > 0 {
			fmt.Printf("actions:   %s\n", strings.Join(actions, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(statCmd)
	statCmd.Flags().BoolVar(&statByID, "id", false, "Treat the argument as an object id instead of a path")
}
