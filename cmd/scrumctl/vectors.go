package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

var vectorsDryRun bool

var vectorsCmd = &cobra.Command{
	Use:   "vectors",
	Short: "Vector index hygiene",
}

var vectorsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove vectors whose issue no longer exists",
	Run:   runVectorsCleanup,
}

var vectorsDedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Drop duplicate embedding records sharing a vector ID",
	Run:   runVectorsDedup,
}

func init() {
	vectorsCmd.PersistentFlags().BoolVar(&vectorsDryRun, "dry-run", false, "Report what would be removed without removing it")
	vectorsCmd.AddCommand(vectorsCleanupCmd)
	vectorsCmd.AddCommand(vectorsDedupCmd)
	rootCmd.AddCommand(vectorsCmd)
}

func runVectorsCleanup(cmd *cobra.Command, args []string) {
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

	indexed, err := a.stores.Embeddings().ListIndexed(ctx)
	if err != nil {
		fail(fmt.Errorf("listing indexed embeddings: %w", err))
	}

	removed := 0
	for _, emb := range indexed {
		_, err := a.stores.Issues().GetByID(ctx, emb.IssueID)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			fail(fmt.Errorf("loading issue %d: %w", emb.IssueID, err))
		}

		if vectorsDryRun {
			fmt.Printf("would remove vector %s (issue %d is gone)\n", emb.VectorID, emb.IssueID)
			removed++
			continue
		}
		if err := rag.RemoveIssue(ctx, emb.IssueID); err != nil {
			fail(fmt.Errorf("removing vector for issue %d: %w", emb.IssueID, err))
		}
		fmt.Printf("removed vector %s (issue %d is gone)\n", emb.VectorID, emb.IssueID)
		removed++
	}

	fmt.Printf("cleanup done: %d of %d indexed vectors affected\n", removed, len(indexed))
}

func runVectorsDedup(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	indexed, err := a.stores.Embeddings().ListIndexed(ctx)
	if err != nil {
		fail(fmt.Errorf("listing indexed embeddings: %w", err))
	}

	// Keep the most recently updated record per vector ID and drop the
	// rest.
	keep := make(map[string]model.IssueEmbedding, len(indexed))
	var drop []model.IssueEmbedding
	for _, emb := range indexed {
		kept, dup := keep[emb.VectorID]
		if !dup {
			keep[emb.VectorID] = emb
			continue
		}
		if emb.UpdatedAt.After(kept.UpdatedAt) {
			keep[emb.VectorID] = emb
			drop = append(drop, kept)
		} else {
			drop = append(drop, emb)
		}
	}

	removed := 0
	for _, emb := range drop {
		kept := keep[emb.VectorID]
		if vectorsDryRun {
			fmt.Printf("would drop embedding record for issue %d (vector %s kept by issue %d)\n",
				emb.IssueID, emb.VectorID, kept.IssueID)
			removed++
			continue
		}
		if err := a.stores.Embeddings().Delete(ctx, emb.IssueID); err != nil && !errors.Is(err, store.ErrNotFound) {
			fail(fmt.Errorf("deleting embedding record for issue %d: %w", emb.IssueID, err))
		}
		fmt.Printf("dropped embedding record for issue %d (vector %s kept by issue %d)\n",
			emb.IssueID, emb.VectorID, kept.IssueID)
		removed++
	}

	fmt.Printf("dedup done: %d duplicate records of %d indexed\n", removed, len(indexed))
}
