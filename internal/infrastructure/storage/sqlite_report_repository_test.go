package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"leafcheck/internal/domain/entity"
)

func newTestRepo(t *testing.T) *SQLiteReportRepository {
	t.Helper()
	repo, err := NewSQLiteReportRepository(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleReport(total float64) *entity.LeafReport {
	return &entity.LeafReport{
		ImageWidth:  40,
		ImageHeight: 30,
		Regions: []entity.RegionFeature{
			{MeanHue: 60, MeanSaturation: 200, MeanValue: 150, MeanBlue: 32, MeanGreen: 150, MeanRed: 32, Condition: entity.ConditionFresh},
		},
		Symptoms: entity.SymptomSummary{
			BrownPercentage:  total / 2,
			YellowPercentage: total / 2,
			Dominant:         entity.SymptomMixed,
			TotalPercentage:  total,
		},
		Severity:     entity.ClassifySeverity(total),
		LeafCoverage: 25,
		HasSymptoms:  total > 0,
	}
}

func TestSQLiteReportRepository_SaveAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, 1, sampleReport(6.25))
	require.NoError(t, err)
	require.Positive(t, id)

	records, err := repo.ListByUser(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	require.Equal(t, id, rec.ID)
	require.Equal(t, int64(1), rec.UserID)
	require.WithinDuration(t, time.Now(), rec.CreatedAt, time.Minute)
	require.Equal(t, 40, rec.Report.ImageWidth)
	require.Equal(t, 30, rec.Report.ImageHeight)
	require.InDelta(t, 6.25, rec.Report.Symptoms.TotalPercentage, 1e-9)
	require.Equal(t, entity.SymptomMixed, rec.Report.Symptoms.Dominant)
	require.Equal(t, entity.SeverityModerate, rec.Report.Severity)
	require.True(t, rec.Report.HasSymptoms)
	require.Len(t, rec.Report.Regions, 1)
	require.Equal(t, entity.ConditionFresh, rec.Report.Regions[0].Condition)
	require.InDelta(t, 60, rec.Report.Regions[0].MeanHue, 1e-9)
}

func TestSQLiteReportRepository_ListNewestFirstWithLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, total := range []float64{0, 2, 7, 12} {
		_, err := repo.Save(ctx, 5, sampleReport(total))
		require.NoError(t, err)
	}
	_, err := repo.Save(ctx, 6, sampleReport(3))
	require.NoError(t, err)

	records, err := repo.ListByUser(ctx, 5, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.InDelta(t, 12, records[0].Report.Symptoms.TotalPercentage, 1e-9)
	require.InDelta(t, 7, records[1].Report.Symptoms.TotalPercentage, 1e-9)
	require.InDelta(t, 2, records[2].Report.Symptoms.TotalPercentage, 1e-9)
	for _, rec := range records {
		require.Equal(t, int64(5), rec.UserID)
	}
}

func TestSQLiteReportRepository_EmptyHistory(t *testing.T) {
	repo := newTestRepo(t)

	records, err := repo.ListByUser(context.Background(), 99, 5)
	require.NoError(t, err)
	require.Empty(t, records)

	records, err = repo.ListByUser(context.Background(), 99, 0)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestSQLiteReportRepository_NilRegionsStoredAsEmpty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	report := sampleReport(0)
	report.Regions = nil
	_, err := repo.Save(ctx, 2, report)
	require.NoError(t, err)

	records, err := repo.ListByUser(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Empty(t, records[0].Report.Regions)
	require.False(t, records[0].Report.HasSymptoms)
	require.Equal(t, entity.SeverityHealthy, records[0].Report.Severity)
}

func TestSQLiteReportRepository_SaveNil(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Save(context.Background(), 1, nil)
	require.Error(t, err)
}

func TestSQLiteReportRepository_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.db")

	repo, err := NewSQLiteReportRepository(path)
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), 1, sampleReport(1.5))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteReportRepository(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.ListByUser(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, entity.SeverityMild, records[0].Report.Severity)
}
