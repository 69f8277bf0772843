package services

import (
	"log/slog"
	"testing"

	"billbox/internal/models"
	"billbox/internal/repositories"
	"billbox/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// CategoryServiceSuite defines the test suite for CategoryServiceInterface
type CategoryServiceSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	categoryRepo *repository_mocks.MockCategoryRepositoryInterface
	userRepo     *repository_mocks.MockUserRepositoryInterface
	service      CategoryServiceInterface
	userID       uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *CategoryServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.service = NewCategoryService(s.categoryRepo, s.userRepo, slog.Default())
	s.userID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *CategoryServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestCategoryServiceSuite runs the test suite
func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceSuite))
}

func (s *CategoryServiceSuite) TestCreateCategory() {
	s.userRepo.EXPECT().Exists(s.userID).Return(true, nil)
	s.categoryRepo.EXPECT().ExistsByUserAndName(s.userID, "Groceries").Return(false, nil)
	s.categoryRepo.EXPECT().Create(gomock.Any()).Return(nil)

	category, err := s.service.CreateCategory(s.userID, "Groceries", "#ff0000")
	s.NoError(err)
	s.Equal("Groceries", category.Name)
}

func (s *CategoryServiceSuite) TestCreateCategory_ShortHexColor() {
	s.userRepo.EXPECT().Exists(s.userID).Return(true, nil)
	s.categoryRepo.EXPECT().ExistsByUserAndName(s.userID, "Transport").Return(false, nil)
	s.categoryRepo.EXPECT().Create(gomock.Any()).Return(nil)

	_, err := s.service.CreateCategory(s.userID, "Transport", "#ff0")
	s.NoError(err)
}

func (s *CategoryServiceSuite) TestCreateCategory_MissingHashRejected() {
	_, err := s.service.CreateCategory(s.userID, "Transport", "ff0000")
	s.ErrorIs(err, models.ErrInvalidHexColor)
}

func (s *CategoryServiceSuite) TestCreateCategory_EmptyName() {
	_, err := s.service.CreateCategory(s.userID, "   ", "#ff0000")
	s.ErrorIs(err, models.ErrCategoryNameRequired)
}

func (s *CategoryServiceSuite) TestCreateCategory_NameTooLong() {
	name := make([]byte, models.MaxCategoryNameLength+1)
	for i := range name {
		name[i] = 'a'
	}

	_, err := s.service.CreateCategory(s.userID, string(name), "#ff0000")
	s.ErrorIs(err, models.ErrCategoryNameTooLong)
}

func (s *CategoryServiceSuite) TestCreateCategory_Duplicate() {
	s.userRepo.EXPECT().Exists(s.userID).Return(true, nil)
	s.categoryRepo.EXPECT().ExistsByUserAndName(s.userID, "Rent").Return(true, nil)

	_, err := s.service.CreateCategory(s.userID, "Rent", "#00ff00")
	s.ErrorIs(err, ErrCategoryAlreadyExists)
}

func (s *CategoryServiceSuite) TestCreateCategory_UnknownUser() {
	s.userRepo.EXPECT().Exists(s.userID).Return(false, nil)

	_, err := s.service.CreateCategory(s.userID, "Rent", "#00ff00")
	s.ErrorIs(err, repositories.ErrUserNotFound)
}

func (s *CategoryServiceSuite) TestGetUserCategories() {
	s.userRepo.EXPECT().Exists(s.userID).Return(true, nil)
	s.categoryRepo.EXPECT().GetByUserID(s.userID).Return([]models.Category{
		{Name: "Food"}, {Name: "Bills"},
	}, nil)

	categories, err := s.service.GetUserCategories(s.userID)
	s.NoError(err)
	s.Len(categories, 2)
}
