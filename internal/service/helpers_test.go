package service

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/db/dbtest"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/storage"
)

// seeded lookup ids from the migrations
const (
	styleItalian   = "7a2d3b63-1e2f-4d66-8b4f-000000000002"
	dietVegan      = "8b3e4c74-2f30-4e77-9c50-000000000002"
	measurementCup = "6f1c2a52-0d1e-4c55-9a3e-000000000001"
)

const missingConvert = "flavorconnect-missing-convert-binary"

type testEnv struct {
	db         *sqlx.DB
	storage    *storage.LocalStorage
	users      repository.UserRepository
	recipes    repository.RecipeRepository
	auth       *AuthService
	userSvc    *UserService
	attributes *AttributeService
	images     *ImageService
	recipeSvc  *RecipeService
	favorites  *FavoriteService
	reviews    *ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := dbtest.New(t)
	store, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	email := NewEmailService("", "noreply@example.com", "http://localhost:8090", "FlavorConnect", true)

	userRepo := repository.NewUserRepository(conn)
	recipeRepo := repository.NewRecipeRepository(conn)
	reviewRepo := repository.NewReviewRepository(conn)
	favoriteRepo := repository.NewFavoriteRepository(conn)

	attributes := NewAttributeService(repository.NewAttributeRepository(conn), repository.NewMeasurementRepository(conn))
	images := NewImageService(store, missingConvert, 5*time.Second)

	return &testEnv{
		db:         conn,
		storage:    store,
		users:      userRepo,
		recipes:    recipeRepo,
		auth:       NewAuthService(userRepo, email),
		userSvc:    NewUserService(userRepo, recipeRepo, images, email),
		attributes: attributes,
		images:     images,
		recipeSvc: NewRecipeService(conn, recipeRepo,
			repository.NewIngredientRepository(conn),
			repository.NewStepRepository(conn),
			reviewRepo, favoriteRepo, attributes, images),
		favorites: NewFavoriteService(favoriteRepo, recipeRepo),
		reviews:   NewReviewService(conn, reviewRepo, recipeRepo, userRepo, email),
	}
}

func (e *testEnv) createUser(t *testing.T, username string, level model.UserLevel) Actor {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Level:        level,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, e.users.Create(user))
	return Actor{UserID: user.ID, Level: level}
}

func (e *testEnv) createRecipe(t *testing.T, actor Actor, title string) *model.Recipe {
	t.Helper()

	recipe, err := e.recipeSvc.Create(actor, validRecipeInput(title))
	require.NoError(t, err)
	return recipe
}

func validRecipeInput(title string) RecipeInput {
	return RecipeInput{
		Title:       title,
		Description: "A **simple** dish",
		StyleID:     styleItalian,
		PrepMinutes: 15,
		CookHours:   1,
		Ingredients: []IngredientInput{
			{Name: "Flour", Quantity: "2", MeasurementID: measurementCup},
			{Name: "salt", Quantity: "1/2"},
		},
		Steps: []string{"Mix everything", "Bake"},
	}
}

// pngUpload builds a multipart file header holding a small PNG
func pngUpload(t *testing.T, filename string) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := range 64 {
		for y := range 48 {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: 120, A: 255})
		}
	}
	var imgBuf bytes.Buffer
	require.NoError(t, png.Encode(&imgBuf, img))

	return fileUpload(t, filename, imgBuf.Bytes())
}

// fileUpload wraps raw bytes in a parsed multipart file field named "image"
func fileUpload(t *testing.T, filename string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h pixels.
// It carries no image data, so only the header can be decoded.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolor

	var buf bytes.Buffer
	buf.Write([]byte("\x89PNG\r\n\x1a\n"))
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}
