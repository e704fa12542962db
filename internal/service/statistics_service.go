package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/repository"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/export"
)

type statisticsRepository interface {
	CountQuestions(ctx context.Context, surveyID int64) (int64, error)
	CountResponses(ctx context.Context, surveyID int64) (int64, error)
	AnswerCountsByQuestion(ctx context.Context, surveyID int64) ([]repository.QuestionAnswerCount, error)
}

// ExportFormat names a supported overview export rendering.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// StatisticsService summarizes survey response volume and renders exports.
// Viewing requires result access on the survey.
type StatisticsService struct {
	repo       statisticsRepository
	surveys    permissionSurveyFinder
	permission effectivePermissionFinder
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewStatisticsService constructs a StatisticsService instance.
func NewStatisticsService(repo statisticsRepository, surveys permissionSurveyFinder, permission effectivePermissionFinder, logger *zap.Logger) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{
		repo:       repo,
		surveys:    surveys,
		permission: permission,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// Overview returns the survey's question and response counts.
func (s *StatisticsService) Overview(ctx context.Context, userID, surveyID int64) (*dto.SurveyOverview, error) {
	survey, err := s.requireResults(ctx, userID, surveyID)
	if err != nil {
		return nil, err
	}

	totalQuestions, err := s.repo.CountQuestions(ctx, surveyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tổng hợp thống kê")
	}
	totalResponses, err := s.repo.CountResponses(ctx, surveyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tổng hợp thống kê")
	}
	counts, err := s.repo.AnswerCountsByQuestion(ctx, surveyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tổng hợp thống kê")
	}

	questions := make([]dto.QuestionCount, 0, len(counts))
	for _, c := range counts {
		questions = append(questions, dto.QuestionCount{
			QuestionID:   c.QuestionID,
			QuestionText: c.QuestionText,
			QuestionType: string(c.QuestionType),
			AnswerCount:  c.AnswerCount,
		})
	}

	return &dto.SurveyOverview{
		SurveyID:       survey.ID,
		Title:          survey.Title,
		Status:         string(survey.Status),
		TotalQuestions: totalQuestions,
		TotalResponses: totalResponses,
		Questions:      questions,
	}, nil
}

// Export renders the overview as CSV or PDF bytes with a suggested filename.
func (s *StatisticsService) Export(ctx context.Context, userID, surveyID int64, format ExportFormat) ([]byte, string, error) {
	overview, err := s.Overview(ctx, userID, surveyID)
	if err != nil {
		return nil, "", err
	}

	table := export.Table{
		Title:   overview.Title,
		Columns: []string{"Câu hỏi", "Loại", "Số câu trả lời"},
		Rows:    make([][]string, 0, len(overview.Questions)),
		Summary: []export.Stat{
			{Label: "Tổng số câu hỏi", Value: fmt.Sprintf("%d", overview.TotalQuestions)},
			{Label: "Tổng số phản hồi", Value: fmt.Sprintf("%d", overview.TotalResponses)},
		},
	}
	for _, q := range overview.Questions {
		table.Rows = append(table.Rows, []string{q.QuestionText, q.QuestionType, fmt.Sprintf("%d", q.AnswerCount)})
	}

	switch format {
	case ExportCSV:
		payload, err := s.csv.Render(table)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể xuất CSV")
		}
		return payload, fmt.Sprintf("survey-%d-overview.csv", surveyID), nil
	case ExportPDF:
		payload, err := s.pdf.Render(table)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể xuất PDF")
		}
		return payload, fmt.Sprintf("survey-%d-overview.pdf", surveyID), nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrBadRequest, "Định dạng xuất không hợp lệ")
	}
}

func (s *StatisticsService) requireResults(ctx context.Context, userID, surveyID int64) (*models.Survey, error) {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy khảo sát")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải khảo sát")
	}
	level, err := resolvePermission(ctx, s.permission, survey, userID)
	if err != nil {
		return nil, err
	}
	if !level.CanViewResults() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Bạn không có quyền xem kết quả khảo sát này")
	}
	return survey, nil
}
