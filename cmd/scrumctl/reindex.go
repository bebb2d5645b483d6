package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	reindexProjectID int64
	reindexAll       bool
	reindexForce     bool
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the vector index for one project or all of them",
	Long: `Re-embeds issues into the vector index. Unchanged issues are skipped
by content hash unless --force is given.`,
	Run: runReindex,
}

func init() {
	reindexCmd.Flags().Int64Var(&reindexProjectID, "project", 0, "Project ID to reindex")
	reindexCmd.Flags().BoolVar(&reindexAll, "all", false, "Reindex every project")
	reindexCmd.Flags().BoolVar(&reindexForce, "force", false, "Reindex issues even when their content hash is unchanged")
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, args []string) {
	if reindexProjectID == 0 && !reindexAll {
		fail(fmt.Errorf("either --project or --all is required"))
	}

	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	rag, _, err := a.rag(ctx)
	if err != nil {
		fail(err)
	}

	var projectIDs []int64
	if reindexAll {
		projects, err := a.stores.Projects().List(ctx)
		if err != nil {
			fail(fmt.Errorf("listing projects: %w", err))
		}
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID)
		}
	} else {
		projectIDs = []int64{reindexProjectID}
	}

	for _, projectID := range projectIDs {
		result, err := rag.ReindexProject(ctx, projectID, reindexForce)
		if err != nil {
			fail(fmt.Errorf("reindexing project %d: %w", projectID, err))
		}
		fmt.Printf("project %d: indexed=%d skipped=%d failed=%d\n",
			projectID, result.Indexed, result.Skipped, result.Failed)
	}
}
