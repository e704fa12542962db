package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/repository"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

type mockStatisticsRepo struct {
	questions int64
	responses int64
	counts    []repository.QuestionAnswerCount
}

func (m *mockStatisticsRepo) CountQuestions(_ context.Context, _ int64) (int64, error) {
	return m.questions, nil
}

func (m *mockStatisticsRepo) CountResponses(_ context.Context, _ int64) (int64, error) {
	return m.responses, nil
}

func (m *mockStatisticsRepo) AnswerCountsByQuestion(_ context.Context, _ int64) ([]repository.QuestionAnswerCount, error) {
	return m.counts, nil
}

func newStatisticsFixture() *StatisticsService {
	repo := &mockStatisticsRepo{
		questions: 2,
		responses: 15,
		counts: []repository.QuestionAnswerCount{
			{QuestionID: 1, QuestionText: "Bạn hài lòng chứ?", QuestionType: models.QuestionTypeBoolean, AnswerCount: 15},
			{QuestionID: 2, QuestionText: "Góp ý thêm", QuestionType: models.QuestionTypeOpenEnded, AnswerCount: 9},
		},
	}
	surveys := &mockSurveyFinder{survey: &models.Survey{ID: 10, UserID: 1, Title: "Khảo sát quý 3", Status: models.SurveyStatusPublished}}
	permission := &mockEffectiveFinder{grants: map[int64]*models.SurveyPermission{
		3: {SurveyID: 10, UserID: 3, Permission: models.PermissionAnalyst},
		4: {SurveyID: 10, UserID: 4, Permission: models.PermissionViewer},
	}}
	return NewStatisticsService(repo, surveys, permission, zap.NewNop())
}

func TestStatisticsOverview(t *testing.T) {
	svc := newStatisticsFixture()

	res, err := svc.Overview(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalQuestions)
	assert.Equal(t, int64(15), res.TotalResponses)
	require.Len(t, res.Questions, 2)
	assert.Equal(t, int64(9), res.Questions[1].AnswerCount)
}

func TestStatisticsOverviewAccess(t *testing.T) {
	svc := newStatisticsFixture()

	// analyst may view results
	_, err := svc.Overview(context.Background(), 3, 10)
	require.NoError(t, err)

	// viewer may not
	_, err = svc.Overview(context.Background(), 4, 10)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	// unknown survey
	_, err = svc.Overview(context.Background(), 1, 999)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStatisticsExportCSV(t *testing.T) {
	svc := newStatisticsFixture()

	payload, filename, err := svc.Export(context.Background(), 1, 10, ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "survey-10-overview.csv", filename)

	content := string(payload)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Câu hỏi")
	assert.Contains(t, lines[1], "Bạn hài lòng chứ?")
	assert.Contains(t, lines[2], "9")
}

func TestStatisticsExportPDF(t *testing.T) {
	svc := newStatisticsFixture()

	payload, filename, err := svc.Export(context.Background(), 1, 10, ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "survey-10-overview.pdf", filename)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestStatisticsExportUnknownFormat(t *testing.T) {
	svc := newStatisticsFixture()

	_, _, err := svc.Export(context.Background(), 1, 10, ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, "Định dạng xuất không hợp lệ", appErrors.FromError(err).Message)
}
