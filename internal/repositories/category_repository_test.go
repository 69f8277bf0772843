package repositories

import (
	"testing"

	"billbox/internal/database"
	"billbox/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// CategoryRepositorySuite defines the test suite for CategoryRepository
type CategoryRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     CategoryRepositoryInterface
	testUser *models.User
}

// SetupTest runs before each test in the suite
func (s *CategoryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCategoryRepository(s.db.DB)
	s.testUser = database.CreateTestUser(s.T(), s.db, "categories@example.com")
}

// TearDownTest runs after each test in the suite
func (s *CategoryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestCategoryRepositorySuite runs the test suite
func TestCategoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(CategoryRepositorySuite))
}

func (s *CategoryRepositorySuite) TestCreate() {
	category := &models.Category{
		UserID: s.testUser.ID,
		Name:   "Groceries",
		Color:  "#ff0000",
	}

	err := s.repo.Create(category)
	s.NoError(err)
	s.NotEqual(uuid.Nil, category.ID)
}

func (s *CategoryRepositorySuite) TestCreate_ShortHexColor() {
	category := &models.Category{
		UserID: s.testUser.ID,
		Name:   "Transport",
		Color:  "#ff0",
	}

	err := s.repo.Create(category)
	s.NoError(err)
}

func (s *CategoryRepositorySuite) TestCreate_InvalidColor() {
	category := &models.Category{
		UserID: s.testUser.ID,
		Name:   "Transport",
		Color:  "ff0000",
	}

	err := s.repo.Create(category)
	s.ErrorIs(err, models.ErrInvalidHexColor)
}

func (s *CategoryRepositorySuite) TestCreate_DuplicateNameSameUser() {
	s.NoError(s.repo.Create(&models.Category{UserID: s.testUser.ID, Name: "Rent", Color: "#00ff00"}))

	err := s.repo.Create(&models.Category{UserID: s.testUser.ID, Name: "Rent", Color: "#0000ff"})
	s.Error(err)
}

func (s *CategoryRepositorySuite) TestCreate_SameNameDifferentUsers() {
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")

	s.NoError(s.repo.Create(&models.Category{UserID: s.testUser.ID, Name: "Rent", Color: "#00ff00"}))
	s.NoError(s.repo.Create(&models.Category{UserID: other.ID, Name: "Rent", Color: "#00ff00"}))
}

func (s *CategoryRepositorySuite) TestGetByUserID() {
	database.CreateTestCategory(s.T(), s.db, s.testUser, "Food", "#ff0000")
	database.CreateTestCategory(s.T(), s.db, s.testUser, "Bills", "#00ff00")

	categories, err := s.repo.GetByUserID(s.testUser.ID)
	s.NoError(err)
	s.Len(categories, 2)
}

func (s *CategoryRepositorySuite) TestExistsByUserAndName() {
	database.CreateTestCategory(s.T(), s.db, s.testUser, "Food", "#ff0000")

	exists, err := s.repo.ExistsByUserAndName(s.testUser.ID, "Food")
	s.NoError(err)
	s.True(exists)

	exists, err = s.repo.ExistsByUserAndName(s.testUser.ID, "Missing")
	s.NoError(err)
	s.False(exists)
}

func (s *CategoryRepositorySuite) TestDelete() {
	category := database.CreateTestCategory(s.T(), s.db, s.testUser, "Food", "#ff0000")

	s.NoError(s.repo.Delete(category.ID))
	s.ErrorIs(s.repo.Delete(category.ID), ErrCategoryNotFound)
}
