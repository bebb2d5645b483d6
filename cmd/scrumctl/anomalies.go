package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ficct.app/scrum/internal/insight"
)

var (
	anomaliesProjectID int64
	anomaliesAll       bool
)

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Project anomaly detection",
}

var anomaliesScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the anomaly checks and persist high severity findings",
	Run:   runAnomaliesScan,
}

func init() {
	anomaliesScanCmd.Flags().Int64Var(&anomaliesProjectID, "project", 0, "Project ID to scan")
	anomaliesScanCmd.Flags().BoolVar(&anomaliesAll, "all", false, "Scan every project")
	anomaliesCmd.AddCommand(anomaliesScanCmd)
	rootCmd.AddCommand(anomaliesCmd)
}

func runAnomaliesScan(cmd *cobra.Command, args []string) {
	if anomaliesProjectID == 0 && !anomaliesAll {
		fail(fmt.Errorf("either --project or --all is required"))
	}

	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	detector := insight.NewDetector(a.stores)

	var projectIDs []int64
	if anomaliesAll {
		projects, err := a.stores.Projects().List(ctx)
		if err != nil {
			fail(fmt.Errorf("listing projects: %w", err))
		}
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID)
		}
	} else {
		projectIDs = []int64{anomaliesProjectID}
	}

	for _, projectID := range projectIDs {
		anomalies, err := detector.ScanProject(ctx, projectID)
		if err != nil {
			fail(fmt.Errorf("scanning project %d: %w", projectID, err))
		}
		fmt.Printf("project %d: %d anomalies\n", projectID, len(anomalies))
		for _, an := range anomalies {
			fmt.Printf("  [%s] %s: %s\n", an.Severity, an.Type, an.Description)
		}
	}
}
