package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"billbox/internal/dto"
	"billbox/internal/models"
	"billbox/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// RecurringServiceSuite defines the test suite for RecurringServiceInterface
type RecurringServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	recurringRepo *repository_mocks.MockRecurringRuleRepositoryInterface
	txnRepo       *repository_mocks.MockTransactionRepositoryInterface
	service       *recurringService
	testUserID    uuid.UUID
	now           time.Time
}

// SetupTest runs before each test in the suite
func (s *RecurringServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.recurringRepo = repository_mocks.NewMockRecurringRuleRepositoryInterface(s.ctrl)
	s.txnRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)

	ledger := NewLedgerService(s.txnRepo, NewNoOpMetrics(), slog.Default())
	s.service = NewRecurringService(s.recurringRepo, ledger, NewNoOpMetrics(), slog.Default()).(*recurringService)

	s.now = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return s.now }
	s.testUserID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *RecurringServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestRecurringServiceSuite runs the test suite
func (s *RecurringServiceSuite) rule(amount float64, frequency string, lastRun time.Time) models.RecurringRule {
	return models.RecurringRule{
		ID:        uuid.New(),
		UserID:    s.testUserID,
		Amount:    decimal.NewFromFloat(amount),
		Frequency: frequency,
		LastRun:   lastRun,
	}
}

func TestRecurringServiceSuite(t *testing.T) {
	suite.Run(t, new(RecurringServiceSuite))
}

func (s *RecurringServiceSuite) TestProcessDueRules_WholePeriodsOnly() {
	// 3.5 elapsed days on a daily rule bills exactly 3 periods
	rule := s.rule(-10, models.FrequencyDaily, s.now.Add(-84*time.Hour))
	expectedLastRun := rule.LastRun.AddDate(0, 0, 3)

	s.recurringRepo.EXPECT().GetAll().Return([]models.RecurringRule{rule}, nil)
	s.txnRepo.EXPECT().CreateWithBalanceUpdate(gomock.Any()).DoAndReturn(func(txn *models.Transaction) error {
		s.Equal(s.testUserID, txn.UserID)
		s.Nil(txn.CategoryID)
		s.True(txn.Value.Equal(decimal.NewFromFloat(-30)))
		s.Equal("Recurring transaction processed for 3 period(s)", txn.Description)
		return nil
	})
	s.recurringRepo.EXPECT().AdvanceLastRun(rule.ID, rule.LastRun, expectedLastRun).Return(nil)

	result, err := s.service.ProcessDueRules()
	s.NoError(err)
	s.Require().Len(result.Processed, 1)
	s.Equal(rule.ID, result.Processed[0].RecurringID)
	s.EqualValues(3, result.Processed[0].Periods)
	s.True(result.Processed[0].NewLastRun.Equal(expectedLastRun))
	s.Empty(result.Skipped)
}

func (s *RecurringServiceSuite) TestProcessDueRules_SubPeriodUntouched() {
	rule := s.rule(-50, models.FrequencyWeekly, s.now.AddDate(0, 0, -6))

	s.recurringRepo.EXPECT().GetAll().Return([]models.RecurringRule{rule}, nil)

	result, err := s.service.ProcessDueRules()
	s.NoError(err)
	s.Empty(result.Processed)
	s.Require().Len(result.Skipped, 1)
	s.Equal("no whole period elapsed", result.Skipped[0].Reason)
}

func (s *RecurringServiceSuite) TestProcessDueRules_UnknownFrequencySkippedBatchContinues() {
	unknown := s.rule(-5, "fortnightly", s.now.AddDate(0, 0, -40))
	due := s.rule(-9.99, models.FrequencyMonthly, s.now.AddDate(0, 0, -30))

	s.recurringRepo.EXPECT().GetAll().Return([]models.RecurringRule{unknown, due}, nil)
	s.txnRepo.EXPECT().CreateWithBalanceUpdate(gomock.Any()).Return(nil)
	s.recurringRepo.EXPECT().AdvanceLastRun(due.ID, due.LastRun, due.LastRun.AddDate(0, 0, 30)).Return(nil)

	result, err := s.service.ProcessDueRules()
	s.NoError(err)
	s.Require().Len(result.Processed, 1)
	s.Equal(due.ID, result.Processed[0].RecurringID)
	s.Require().Len(result.Skipped, 1)
	s.Equal(unknown.ID, result.Skipped[0].RecurringID)
	s.Contains(result.Skipped[0].Reason, "unknown frequency")
}

func (s *RecurringServiceSuite) TestProcessDueRules_RerunAfterAdvanceDoesNothing() {
	// Watermark advanced to within one period of now, so a second run is a no-op
	rule := s.rule(-10, models.FrequencyDaily, s.now.Add(-12*time.Hour))

	s.recurringRepo.EXPECT().GetAll().Return([]models.RecurringRule{rule}, nil)

	result, err := s.service.ProcessDueRules()
	s.NoError(err)
	s.Empty(result.Processed)
	s.Len(result.Skipped, 1)
}

func (s *RecurringServiceSuite) TestProcessDueRules_FailingRuleDoesNotAbortBatch() {
	failing := s.rule(-10, models.FrequencyDaily, s.now.AddDate(0, 0, -2))
	healthy := s.rule(-20, models.FrequencyDaily, s.now.AddDate(0, 0, -2))

	s.recurringRepo.EXPECT().GetAll().Return([]models.RecurringRule{failing, healthy}, nil)
	first := s.txnRepo.EXPECT().CreateWithBalanceUpdate(gomock.Any()).Return(errors.New("db down"))
	s.txnRepo.EXPECT().CreateWithBalanceUpdate(gomock.Any()).Return(nil).After(first)
	s.recurringRepo.EXPECT().AdvanceLastRun(healthy.ID, healthy.LastRun, healthy.LastRun.AddDate(0, 0, 2)).Return(nil)

	result, err := s.service.ProcessDueRules()
	s.NoError(err)
	s.Require().Len(result.Processed, 1)
	s.Equal(healthy.ID, result.Processed[0].RecurringID)
	s.Require().Len(result.Skipped, 1)
	s.Equal(failing.ID, result.Skipped[0].RecurringID)
}

func (s *RecurringServiceSuite) TestProcessDueRules_WatermarkConflictReported() {
	rule := s.rule(-10, models.FrequencyDaily, s.now.AddDate(0, 0, -2))

	s.recurringRepo.EXPECT().GetAll().Return([]models.RecurringRule{rule}, nil)
	s.txnRepo.EXPECT().CreateWithBalanceUpdate(gomock.Any()).Return(nil)
	s.recurringRepo.EXPECT().AdvanceLastRun(rule.ID, rule.LastRun, rule.LastRun.AddDate(0, 0, 2)).
		Return(errors.New("watermark changed concurrently"))

	result, err := s.service.ProcessDueRules()
	s.NoError(err)
	s.Empty(result.Processed)
	s.Require().Len(result.Skipped, 1)
	s.Equal("watermark advance failed", result.Skipped[0].Reason)
}

func (s *RecurringServiceSuite) TestCreateRule_InvalidAmount() {
	_, err := s.service.CreateRule(s.testUserID, &dto.CreateRecurringRuleRequest{
		Amount:    "ten euros",
		Frequency: models.FrequencyDaily,
	})
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *RecurringServiceSuite) TestCreateRule() {
	s.recurringRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(rule *models.RecurringRule) error {
		s.Equal(s.testUserID, rule.UserID)
		s.True(rule.Amount.Equal(decimal.NewFromFloat(-15.50)))
		s.Equal(models.FrequencyWeekly, rule.Frequency)
		return nil
	})

	rule, err := s.service.CreateRule(s.testUserID, &dto.CreateRecurringRuleRequest{
		Amount:    "-15.50",
		Frequency: models.FrequencyWeekly,
	})
	s.NoError(err)
	s.NotNil(rule)
}
