package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

type mockResponseRepo struct {
	created *models.Response
	answers []models.Answer
}

func (m *mockResponseRepo) Create(_ context.Context, response *models.Response, answers []models.Answer) error {
	response.ID = 77
	m.created = response
	m.answers = answers
	return nil
}

type mockResponseQuestions struct {
	questions []models.Question
}

func (m *mockResponseQuestions) ListBySurvey(_ context.Context, surveyID int64) ([]models.Question, error) {
	var list []models.Question
	for _, q := range m.questions {
		if q.SurveyID == surveyID {
			list = append(list, q)
		}
	}
	return list, nil
}

type mockResponseOptions struct {
	byQuestion map[int64][]models.Option
}

func (m *mockResponseOptions) ListByQuestion(_ context.Context, questionID int64) ([]models.Option, error) {
	return m.byQuestion[questionID], nil
}

func newResponseFixture(status models.SurveyStatus) (*ResponseService, *mockResponseRepo, *mockNotifier, *mockActivityRecorder) {
	repo := &mockResponseRepo{}
	surveys := &mockSurveyFinder{survey: &models.Survey{ID: 10, UserID: 1, Title: "Khảo sát mức độ hài lòng", Status: status}}
	questions := &mockResponseQuestions{questions: []models.Question{
		{ID: 100, SurveyID: 10, QuestionText: "Bạn hài lòng chứ?", QuestionType: models.QuestionTypeBoolean},
		{ID: 101, SurveyID: 10, QuestionText: "Tính năng yêu thích", QuestionType: models.QuestionTypeMultipleChoice},
		{ID: 102, SurveyID: 10, QuestionText: "Xếp hạng ưu tiên", QuestionType: models.QuestionTypeRanking},
		{ID: 103, SurveyID: 10, QuestionText: "Góp ý thêm", QuestionType: models.QuestionTypeOpenEnded},
	}}
	options := &mockResponseOptions{byQuestion: map[int64][]models.Option{
		100: {{ID: 1, QuestionID: 100, OptionText: "Có"}, {ID: 2, QuestionID: 100, OptionText: "Không"}},
		101: {{ID: 3, QuestionID: 101, OptionText: "Biểu đồ"}, {ID: 4, QuestionID: 101, OptionText: "Xuất PDF"}},
		102: {{ID: 5, QuestionID: 102, OptionText: "Tốc độ"}, {ID: 6, QuestionID: 102, OptionText: "Giao diện"}},
	}}
	notify := &mockNotifier{}
	activity := &mockActivityRecorder{}
	svc := NewResponseService(repo, surveys, questions, options, activity, notify, nil, nil)
	return svc, repo, notify, activity
}

func TestResponseSubmitStoresAnswers(t *testing.T) {
	svc, repo, notify, activity := newResponseFixture(models.SurveyStatusPublished)

	userID := int64(2)
	res, err := svc.Submit(context.Background(), &userID, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{
			{QuestionID: 100, OptionID: ptrInt64(1)},
			{QuestionID: 103, AnswerText: ptrString("Rất tốt")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), res.ResponseID)
	assert.Equal(t, 2, res.AnswerCount)
	require.NotNil(t, repo.created)
	assert.Equal(t, &userID, repo.created.UserID)
	require.Len(t, repo.answers, 2)
	assert.Equal(t, int64(1), *repo.answers[0].OptionID)
	assert.Equal(t, "Rất tốt", *repo.answers[1].AnswerText)

	// The owner hears about the new response and the submitter is logged.
	require.Len(t, notify.sent, 1)
	assert.Equal(t, int64(1), notify.sent[0].UserID)
	assert.Equal(t, models.NotifyNewResponse, notify.sent[0].Type)
	require.Len(t, activity.entries, 1)
	assert.Equal(t, models.ActionSubmitResponse, activity.entries[0].ActionType)
}

func TestResponseSubmitAnonymous(t *testing.T) {
	svc, repo, notify, activity := newResponseFixture(models.SurveyStatusPublished)

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 103, AnswerText: ptrString("Ẩn danh")}},
	})
	require.NoError(t, err)
	assert.Nil(t, repo.created.UserID)
	assert.Len(t, notify.sent, 1)
	assert.Empty(t, activity.entries)
}

func TestResponseSubmitRejectsDraft(t *testing.T) {
	svc, _, _, _ := newResponseFixture(models.SurveyStatusDraft)

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 103}},
	})
	require.Error(t, err)
	assert.Equal(t, "Khảo sát đang ở trạng thái bản nháp, chưa thể nộp phản hồi", appErrors.FromError(err).Message)
}

func TestResponseSubmitRejectsArchived(t *testing.T) {
	svc, _, _, _ := newResponseFixture(models.SurveyStatusArchived)

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 103}},
	})
	require.Error(t, err)
	assert.Equal(t, "Khảo sát đã được lưu trữ, không thể nộp phản hồi", appErrors.FromError(err).Message)
}

func TestResponseSubmitUnknownQuestion(t *testing.T) {
	svc, _, _, _ := newResponseFixture(models.SurveyStatusPublished)

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 999}},
	})
	require.Error(t, err)
	assert.Equal(t, "questionId không thuộc khảo sát: 999", appErrors.FromError(err).Message)
}

func TestResponseSubmitForeignOption(t *testing.T) {
	svc, _, _, _ := newResponseFixture(models.SurveyStatusPublished)

	// Option 3 belongs to question 101, not 100.
	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 100, OptionID: ptrInt64(3)}},
	})
	require.Error(t, err)
	assert.Equal(t, "Không tìm thấy optionId: 3", appErrors.FromError(err).Message)
}

func TestResponseSubmitMatchesOptionText(t *testing.T) {
	svc, repo, _, _ := newResponseFixture(models.SurveyStatusPublished)

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 100, AnswerText: ptrString("không")}},
	})
	require.NoError(t, err)
	require.Len(t, repo.answers, 1)
	assert.Equal(t, int64(2), *repo.answers[0].OptionID)
}

func TestResponseSubmitRejectsUnknownOptionText(t *testing.T) {
	svc, _, _, _ := newResponseFixture(models.SurveyStatusPublished)

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 100, AnswerText: ptrString("Có lẽ")}},
	})
	require.Error(t, err)
	assert.Equal(t, `Giá trị lựa chọn "Có lẽ" không thuộc câu hỏi này`, appErrors.FromError(err).Message)
}

func TestResponseSubmitMultipleChoiceExpandsRows(t *testing.T) {
	svc, repo, _, _ := newResponseFixture(models.SurveyStatusPublished)

	res, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 101, SelectedOptionIDs: []int64{3, 4}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.AnswerCount)
	require.Len(t, repo.answers, 2)
	assert.Equal(t, int64(3), *repo.answers[0].OptionID)
	assert.Equal(t, int64(4), *repo.answers[1].OptionID)
}

func TestResponseSubmitMultipleChoiceByText(t *testing.T) {
	svc, repo, _, _ := newResponseFixture(models.SurveyStatusPublished)

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 101, SelectedOptions: []string{"biểu đồ"}}},
	})
	require.NoError(t, err)
	require.Len(t, repo.answers, 1)
	assert.Equal(t, int64(3), *repo.answers[0].OptionID)
}

func TestResponseSubmitRankingStoresRanks(t *testing.T) {
	svc, repo, _, _ := newResponseFixture(models.SurveyStatusPublished)

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 102, RankingOptionIDs: []int64{6, 5}}},
	})
	require.NoError(t, err)
	require.Len(t, repo.answers, 2)
	assert.Equal(t, int64(6), *repo.answers[0].OptionID)
	assert.Equal(t, "1", *repo.answers[0].AnswerText)
	assert.Equal(t, int64(5), *repo.answers[1].OptionID)
	assert.Equal(t, "2", *repo.answers[1].AnswerText)
}

func TestResponseSubmitRankingRequiresIDs(t *testing.T) {
	svc, _, _, _ := newResponseFixture(models.SurveyStatusPublished)

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 102}},
	})
	require.Error(t, err)
	assert.Equal(t, "Câu hỏi xếp hạng cần danh sách rankingOptionIds", appErrors.FromError(err).Message)
}

func TestResponseSubmitEmptyAnswers(t *testing.T) {
	svc, _, _, _ := newResponseFixture(models.SurveyStatusPublished)

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResponseSubmitSurveyWithoutQuestions(t *testing.T) {
	svc, _, _, _ := newResponseFixture(models.SurveyStatusPublished)
	svc.questions = &mockResponseQuestions{}

	_, err := svc.Submit(context.Background(), nil, 10, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 100}},
	})
	require.Error(t, err)
	assert.Equal(t, "Khảo sát chưa có câu hỏi", appErrors.FromError(err).Message)
}

func TestResponseSubmitUnknownSurvey(t *testing.T) {
	svc, _, _, _ := newResponseFixture(models.SurveyStatusPublished)

	_, err := svc.Submit(context.Background(), nil, 999, dto.ResponseSubmitRequest{
		Answers: []dto.AnswerSubmit{{QuestionID: 100}},
	})
	require.Error(t, err)
	assert.Equal(t, "Không tìm thấy khảo sát", appErrors.FromError(err).Message)
}
