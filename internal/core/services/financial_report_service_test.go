package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dahira-app/dahira_backend/internal/apperrors"
	"github.com/dahira-app/dahira_backend/internal/core/domain"
	portssvc "github.com/dahira-app/dahira_backend/internal/core/ports/services"
	"github.com/dahira-app/dahira_backend/internal/core/services"
	"github.com/dahira-app/dahira_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockFinancialReportRepository is a mock type for the FinancialReportRepositoryFacade interface.
type MockFinancialReportRepository struct {
	mock.Mock
}

func (m *MockFinancialReportRepository) SaveFinancialReport(ctx context.Context, report domain.CommissionFinancialReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockFinancialReportRepository) FindFinancialReportByID(ctx context.Context, reportID string) (*domain.CommissionFinancialReport, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionFinancialReport), args.Error(1)
}

func (m *MockFinancialReportRepository) ListFinancialReportsByCommission(ctx context.Context, commission domain.Commission, limit int, offset int) ([]domain.CommissionFinancialReport, error) {
	args := m.Called(ctx, commission, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommissionFinancialReport), args.Error(1)
}

func (m *MockFinancialReportRepository) UpdateFinancialReport(ctx context.Context, report domain.CommissionFinancialReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockFinancialReportRepository) UpdateFinancialReportStatus(ctx context.Context, report domain.CommissionFinancialReport, expectedStatus domain.ReportStatus) error {
	args := m.Called(ctx, report, expectedStatus)
	return args.Error(0)
}

// --- Test Suite Setup ---

type FinancialReportServiceTestSuite struct {
	suite.Suite
	mockRepo *MockFinancialReportRepository
	service  portssvc.FinancialReportSvcFacade
}

func (suite *FinancialReportServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFinancialReportRepository)
	suite.service = services.NewFinancialReportService(suite.mockRepo)
}

func reportPeriod() (time.Time, time.Time) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 3, 0)
}

// --- Test Cases ---

func (suite *FinancialReportServiceTestSuite) TestCreateFinancialReport_DerivesTotals() {
	ctx := context.Background()
	start, end := reportPeriod()
	req := dto.CreateFinancialReportRequest{
		Commission:           domain.CommissionSocial,
		Period:               "Q1 2025",
		StartDate:            start,
		EndDate:              end,
		TotalBudgetAllocated: decimal.NewFromInt(100000),
		Expenses: []dto.ExpenseLineRequest{
			{Category: "Transport", Amount: decimal.NewFromInt(12000), Date: start},
			{Category: "Meals", Amount: decimal.NewFromInt(8000), Date: start},
		},
	}

	suite.mockRepo.On("SaveFinancialReport", ctx, mock.AnythingOfType("domain.CommissionFinancialReport")).Return(nil).Once()

	report, err := suite.service.CreateFinancialReport(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.ReportDraft, report.Status)
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(20000)))
	suite.True(report.Balance.Equal(decimal.NewFromInt(80000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FinancialReportServiceTestSuite) TestCreateFinancialReport_NegativeExpense() {
	ctx := context.Background()
	start, end := reportPeriod()
	req := dto.CreateFinancialReportRequest{
		Commission:           domain.CommissionSocial,
		Period:               "Q1 2025",
		StartDate:            start,
		EndDate:              end,
		TotalBudgetAllocated: decimal.NewFromInt(100000),
		Expenses: []dto.ExpenseLineRequest{
			{Category: "Refund", Amount: decimal.NewFromInt(-500), Date: start},
		},
	}

	report, err := suite.service.CreateFinancialReport(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveFinancialReport")
}

func (suite *FinancialReportServiceTestSuite) TestReplaceExpenses_RecomputesBalance() {
	ctx := context.Background()
	reportID := uuid.NewString()
	start, end := reportPeriod()
	stored := &domain.CommissionFinancialReport{
		ReportID:             reportID,
		Commission:           domain.CommissionCulture,
		Period:               "Q1 2025",
		StartDate:            start,
		EndDate:              end,
		TotalBudgetAllocated: decimal.NewFromInt(50000),
		Status:               domain.ReportDraft,
	}

	suite.mockRepo.On("FindFinancialReportByID", ctx, reportID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateFinancialReport", ctx, mock.MatchedBy(func(r domain.CommissionFinancialReport) bool {
		return r.TotalExpenses.Equal(decimal.NewFromInt(60000)) && r.Balance.Equal(decimal.NewFromInt(-10000))
	})).Return(nil).Once()

	updated, err := suite.service.ReplaceExpenses(ctx, reportID, dto.ReplaceExpensesRequest{
		Expenses: []dto.ExpenseLineRequest{
			{Category: "Venue", Amount: decimal.NewFromInt(60000), Date: start},
		},
	}, uuid.NewString())

	suite.Require().NoError(err)
	// Overspent reports stay editable and submittable; the balance just goes negative.
	suite.True(updated.Balance.IsNegative())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FinancialReportServiceTestSuite) TestReplaceExpenses_RejectedOutsideDraft() {
	ctx := context.Background()
	reportID := uuid.NewString()
	stored := &domain.CommissionFinancialReport{
		ReportID: reportID,
		Status:   domain.ReportSubmitted,
	}

	suite.mockRepo.On("FindFinancialReportByID", ctx, reportID).Return(stored, nil).Once()

	_, err := suite.service.ReplaceExpenses(ctx, reportID, dto.ReplaceExpensesRequest{}, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateFinancialReport")
}

func (suite *FinancialReportServiceTestSuite) TestSubmitFinancialReport_Success() {
	ctx := context.Background()
	reportID := uuid.NewString()
	stored := &domain.CommissionFinancialReport{
		ReportID: reportID,
		Status:   domain.ReportDraft,
	}

	suite.mockRepo.On("FindFinancialReportByID", ctx, reportID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateFinancialReportStatus", ctx, mock.MatchedBy(func(r domain.CommissionFinancialReport) bool {
		return r.Status == domain.ReportSubmitted
	}), domain.ReportDraft).Return(nil).Once()

	submitted, err := suite.service.SubmitFinancialReport(ctx, reportID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.ReportSubmitted, submitted.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FinancialReportServiceTestSuite) TestDecideOnReport_ValidateClosesReport() {
	ctx := context.Background()
	reportID := uuid.NewString()
	stored := &domain.CommissionFinancialReport{
		ReportID: reportID,
		Status:   domain.ReportSubmitted,
		Balance:  decimal.NewFromInt(-2500),
	}

	suite.mockRepo.On("FindFinancialReportByID", ctx, reportID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateFinancialReportStatus", ctx, mock.MatchedBy(func(r domain.CommissionFinancialReport) bool {
		return r.Status == domain.ReportClosed
	}), domain.ReportSubmitted).Return(nil).Once()

	decided, err := suite.service.DecideOnReport(ctx, reportID, dto.ReportDecisionRequest{
		Decision: "VALIDATE",
	}, uuid.NewString())

	suite.Require().NoError(err)
	// Validation is a human judgement; a negative balance does not block it.
	suite.Equal(domain.ReportClosed, decided.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FinancialReportServiceTestSuite) TestDecideOnReport_RejectKeepsNote() {
	ctx := context.Background()
	reportID := uuid.NewString()
	stored := &domain.CommissionFinancialReport{
		ReportID: reportID,
		Status:   domain.ReportUnderFinanceReview,
	}

	suite.mockRepo.On("FindFinancialReportByID", ctx, reportID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateFinancialReportStatus", ctx, mock.MatchedBy(func(r domain.CommissionFinancialReport) bool {
		return r.Status == domain.ReportRejected && r.ReviewNote == "Justificatifs manquants"
	}), domain.ReportUnderFinanceReview).Return(nil).Once()

	decided, err := suite.service.DecideOnReport(ctx, reportID, dto.ReportDecisionRequest{
		Decision:   "REJECT",
		ReviewNote: "Justificatifs manquants",
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.ReportRejected, decided.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FinancialReportServiceTestSuite) TestDecideOnReport_TerminalState() {
	ctx := context.Background()
	reportID := uuid.NewString()
	stored := &domain.CommissionFinancialReport{
		ReportID: reportID,
		Status:   domain.ReportClosed,
	}

	suite.mockRepo.On("FindFinancialReportByID", ctx, reportID).Return(stored, nil).Once()

	_, err := suite.service.DecideOnReport(ctx, reportID, dto.ReportDecisionRequest{
		Decision: "VALIDATE",
	}, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateFinancialReportStatus")
}

func (suite *FinancialReportServiceTestSuite) TestListFinancialReports_UnknownCommission() {
	ctx := context.Background()

	_, err := suite.service.ListFinancialReports(ctx, dto.ListFinancialReportsParams{Commission: "SPORTS"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListFinancialReportsByCommission")
}

func TestFinancialReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinancialReportServiceTestSuite))
}
