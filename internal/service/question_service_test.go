package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

type mockQuestionRepo struct {
	questions map[int64]*models.Question
	nextID    int64
	deleted   []int64
}

func (m *mockQuestionRepo) Create(_ context.Context, question *models.Question) error {
	m.nextID++
	question.ID = m.nextID
	question.DisplayOrder = len(m.questions) + 1
	if m.questions == nil {
		m.questions = make(map[int64]*models.Question)
	}
	m.questions[question.ID] = question
	return nil
}

func (m *mockQuestionRepo) FindByID(_ context.Context, id int64) (*models.Question, error) {
	if q, ok := m.questions[id]; ok {
		return q, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockQuestionRepo) ListBySurvey(_ context.Context, surveyID int64) ([]models.Question, error) {
	var list []models.Question
	for _, q := range m.questions {
		if q.SurveyID == surveyID {
			list = append(list, *q)
		}
	}
	return list, nil
}

func (m *mockQuestionRepo) Update(_ context.Context, question *models.Question) error {
	m.questions[question.ID] = question
	return nil
}

func (m *mockQuestionRepo) Delete(_ context.Context, id int64) error {
	delete(m.questions, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockOptionLister struct {
	options []models.Option
}

func (m *mockOptionLister) ListByQuestion(_ context.Context, _ int64) ([]models.Option, error) {
	return m.options, nil
}

type mockEffectiveFinder struct {
	grants map[int64]*models.SurveyPermission
}

func (m *mockEffectiveFinder) FindEffective(_ context.Context, _, userID int64) (*models.SurveyPermission, error) {
	if g, ok := m.grants[userID]; ok {
		return g, nil
	}
	return nil, sql.ErrNoRows
}

func newQuestionFixture() (*QuestionService, *mockQuestionRepo) {
	repo := &mockQuestionRepo{}
	surveys := &mockSurveyFinder{survey: &models.Survey{ID: 10, UserID: 1, Title: "Khảo sát nội bộ"}}
	permission := &mockEffectiveFinder{grants: map[int64]*models.SurveyPermission{
		2: {SurveyID: 10, UserID: 2, Permission: models.PermissionEditor},
		3: {SurveyID: 10, UserID: 3, Permission: models.PermissionViewer},
	}}
	svc := NewQuestionService(repo, &mockOptionLister{}, surveys, permission, nil, nil, zap.NewNop())
	return svc, repo
}

func TestQuestionCreatePlainType(t *testing.T) {
	svc, repo := newQuestionFixture()

	res, err := svc.Create(context.Background(), 1, 10, dto.QuestionCreateRequest{
		QuestionText: "Bạn hài lòng với dịch vụ chứ?",
		QuestionType: models.QuestionTypeBoolean,
	})
	require.NoError(t, err)
	assert.Equal(t, "boolean", res.QuestionType)
	assert.Nil(t, repo.questions[res.ID].ConfigJSON)
}

func TestQuestionCreateRequiredDefaultsTrue(t *testing.T) {
	svc, repo := newQuestionFixture()

	res, err := svc.Create(context.Background(), 1, 10, dto.QuestionCreateRequest{
		QuestionText: "Góp ý của bạn",
		QuestionType: models.QuestionTypeOpenEnded,
	})
	require.NoError(t, err)
	assert.True(t, res.IsRequired)
	assert.True(t, repo.questions[res.ID].IsRequired)

	optional := false
	res, err = svc.Create(context.Background(), 1, 10, dto.QuestionCreateRequest{
		QuestionText: "Câu hỏi không bắt buộc",
		QuestionType: models.QuestionTypeOpenEnded,
		IsRequired:   &optional,
	})
	require.NoError(t, err)
	assert.False(t, res.IsRequired)
}

func TestQuestionCreateRankingConfig(t *testing.T) {
	svc, repo := newQuestionFixture()

	res, err := svc.Create(context.Background(), 1, 10, dto.QuestionCreateRequest{
		QuestionText: "Xếp hạng các tính năng",
		QuestionType: models.QuestionTypeRanking,
		RankingConfig: &dto.RankingQuestionConfig{
			RankingOptions: []string{"Giao diện", "Tốc độ", "Hỗ trợ"},
			MaxRankings:    3,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.RankingConfig)
	assert.Len(t, res.RankingConfig.RankingOptions, 3)

	stored := repo.questions[res.ID].ConfigJSON
	require.NotNil(t, stored)
	var decoded dto.RankingQuestionConfig
	require.NoError(t, json.Unmarshal([]byte(*stored), &decoded))
	assert.Equal(t, 3, decoded.MaxRankings)
}

func TestQuestionCreateMissingRequiredConfig(t *testing.T) {
	svc, _ := newQuestionFixture()

	_, err := svc.Create(context.Background(), 1, 10, dto.QuestionCreateRequest{
		QuestionText: "Tải lên CV của bạn",
		QuestionType: models.QuestionTypeFileUpload,
	})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "fileUploadConfig")
}

func TestQuestionCreateConfigForPlainType(t *testing.T) {
	svc, _ := newQuestionFixture()

	_, err := svc.Create(context.Background(), 1, 10, dto.QuestionCreateRequest{
		QuestionText: "Góp ý thêm",
		QuestionType: models.QuestionTypeOpenEnded,
		DateTimeConfig: &dto.DateTimeQuestionConfig{
			IncludeTime: true,
		},
	})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "không nhận cấu hình")
}

func TestQuestionCreateMultipleConfigs(t *testing.T) {
	svc, _ := newQuestionFixture()

	_, err := svc.Create(context.Background(), 1, 10, dto.QuestionCreateRequest{
		QuestionText: "Xếp hạng",
		QuestionType: models.QuestionTypeRanking,
		RankingConfig: &dto.RankingQuestionConfig{
			RankingOptions: []string{"A"},
			MaxRankings:    1,
		},
		DateTimeConfig: &dto.DateTimeQuestionConfig{},
	})
	require.Error(t, err)
	assert.Equal(t, "Chỉ được cung cấp một cấu hình cho câu hỏi", appErrors.FromError(err).Message)
}

func TestQuestionDateTimeConfigDefaultsFormat(t *testing.T) {
	svc, repo := newQuestionFixture()

	res, err := svc.Create(context.Background(), 1, 10, dto.QuestionCreateRequest{
		QuestionText: "Chọn ngày hẹn",
		QuestionType: models.QuestionTypeDateTime,
		DateTimeConfig: &dto.DateTimeQuestionConfig{
			IncludeTime: true,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.DateTimeConfig)
	assert.Equal(t, "dd/MM/yyyy", res.DateTimeConfig.DateFormat)

	stored := repo.questions[res.ID].ConfigJSON
	require.NotNil(t, stored)
	assert.Contains(t, *stored, "dd/MM/yyyy")
}

func TestQuestionCreateRequiresEditPermission(t *testing.T) {
	svc, _ := newQuestionFixture()

	// viewer grant cannot edit
	_, err := svc.Create(context.Background(), 3, 10, dto.QuestionCreateRequest{
		QuestionText: "Câu hỏi mới",
		QuestionType: models.QuestionTypeBoolean,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	// no grant at all
	_, err = svc.Create(context.Background(), 9, 10, dto.QuestionCreateRequest{
		QuestionText: "Câu hỏi mới",
		QuestionType: models.QuestionTypeBoolean,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestQuestionUpdateTypeChangeClearsConfig(t *testing.T) {
	svc, repo := newQuestionFixture()

	created, err := svc.Create(context.Background(), 1, 10, dto.QuestionCreateRequest{
		QuestionText: "Chọn ngày",
		QuestionType: models.QuestionTypeDateTime,
		DateTimeConfig: &dto.DateTimeQuestionConfig{},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.questions[created.ID].ConfigJSON)

	newType := models.QuestionTypeOpenEnded
	res, err := svc.Update(context.Background(), 1, created.ID, dto.QuestionUpdateRequest{
		QuestionType: &newType,
	})
	require.NoError(t, err)
	assert.Equal(t, "open_ended", res.QuestionType)
	assert.Nil(t, repo.questions[created.ID].ConfigJSON)
	assert.Nil(t, res.DateTimeConfig)
}

func TestQuestionDelete(t *testing.T) {
	svc, repo := newQuestionFixture()

	created, err := svc.Create(context.Background(), 2, 10, dto.QuestionCreateRequest{
		QuestionText: "Sẽ bị xóa",
		QuestionType: models.QuestionTypeBoolean,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 2, created.ID))
	assert.Equal(t, []int64{created.ID}, repo.deleted)

	err = svc.Delete(context.Background(), 2, created.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
