package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"snapgram/pkg/config"
	"snapgram/pkg/database"
	"snapgram/pkg/logger"
	"snapgram/pkg/models"
	"snapgram/pkg/preview"
	"snapgram/pkg/s3"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var postsPerUser int

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Fill a development database with demo accounts and posts",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log := logger.New().With(zap.String("service", "seed"))
		defer log.Sync()

		db, err := database.Open(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}

		if err := seedDatabase(cmd.Context(), db, s3Client, log); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		log.Info("Database seeded successfully!")
		return nil
	},
}

func init() {
	rootCmd.Flags().IntVar(&postsPerUser, "posts", 3, "posts to create for every new user")
}

var testUsers = []struct {
	email    string
	name     string
	username string
	password string
	tags     string
}{
	{"alice@test.com", "Alice Cooper", "alice_cat", "password123", "cats,sleep"},
	{"bob@test.com", "Bob Marley", "bob_cat", "password123", "cats,music"},
	{"charlie@test.com", "Charlie Day", "charlie_cat", "password123", "cats"},
	{"diana@test.com", "Diana Prince", "diana_cat", "password123", "cats,travel"},
	{"eve@test.com", "Eve Moneypenny", "eve_cat", "password123", "cats,office"},
}

func seedDatabase(ctx context.Context, db *gorm.DB, s3Client *s3.Client, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	userIDs := make([]string, 0, len(testUsers))
	var postIDs []string

	for _, userData := range testUsers {
		var existing models.Account
		result := db.WithContext(ctx).Where("email = ?", userData.email).First(&existing)
		if result.Error == nil {
			log.Info("Account %s already exists, skipping", userData.email)
			var user models.User
			if err := db.WithContext(ctx).Where("account_id = ?", existing.ID).First(&user).Error; err == nil {
				userIDs = append(userIDs, user.ID)
			}
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up account %s: %w", userData.email, result.Error)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		account := &models.Account{
			Email:        userData.email,
			Name:         userData.name,
			PasswordHash: string(hashedPassword),
		}
		if err := db.WithContext(ctx).Create(account).Error; err != nil {
			log.Error("Failed to create account %s: %v", userData.email, err)
			continue
		}

		user := &models.User{
			AccountID: account.ID,
			Name:      userData.name,
			Email:     userData.email,
			Username:  userData.username,
		}
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			log.Error("Failed to create profile for %s: %v", userData.username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs = append(userIDs, user.ID)

		log.Info("Creating %d posts for user %s", postsPerUser, user.Username)
		for i := 0; i < postsPerUser; i++ {
			postID, err := createPostWithCatImage(ctx, db, s3Client, httpClient, user, userData.tags, i, log)
			if err != nil {
				log.Error("Failed to create post %d for user %s: %v", i+1, user.Username, err)
				continue
			}
			postIDs = append(postIDs, postID)
			time.Sleep(200 * time.Millisecond)
		}
	}

	// Every user likes and saves every post made by the next user in the list.
	for i, userID := range userIDs {
		next := userIDs[(i+1)%len(userIDs)]
		var posts []models.Post
		if err := db.WithContext(ctx).Where("creator_id = ? AND id IN ?", next, postIDs).Find(&posts).Error; err != nil {
			return fmt.Errorf("failed to list posts of %s: %w", next, err)
		}
		for _, post := range posts {
			likes := append(pq.StringArray{}, post.Likes...)
			likes = append(likes, userID)
			if err := db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Update("likes", likes).Error; err != nil {
				log.Error("Failed to like post %s: %v", post.ID, err)
			}
			if err := db.WithContext(ctx).Create(&models.Save{UserID: userID, PostID: post.ID}).Error; err != nil {
				log.Error("Failed to save post %s: %v", post.ID, err)
			}
		}
	}

	log.Info("Created test likes and saves")
	return nil
}

func createPostWithCatImage(ctx context.Context, db *gorm.DB, s3Client *s3.Client, httpClient *http.Client, user *models.User, tags string, index int, log *logger.Logger) (string, error) {
	cataasURL := "https://cataas.com/cat"
	if index%2 == 0 {
		cataasURL += fmt.Sprintf("/says/Hello from %s", user.Username)
	}

	log.Info("Fetching cat image from %s", cataasURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cataasURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch cat image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cataas API returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) == 0 {
		return "", fmt.Errorf("received empty image data")
	}

	fileID := uuid.New().String() + ".jpg"
	log.Info("Uploading %d bytes as %s", len(imageData), fileID)
	if err := s3Client.UploadFile(ctx, fileID, bytes.NewReader(imageData), "image/jpeg"); err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	imageURL, err := s3Client.PreviewURL(ctx, fileID, preview.DefaultWidth, preview.DefaultHeight, preview.DefaultQuality)
	if err != nil {
		return "", fmt.Errorf("failed to build preview url: %w", err)
	}

	post := &models.Post{
		CreatorID: user.ID,
		Caption:   fmt.Sprintf("Cat #%d by %s", index+1, user.Name),
		ImageURL:  imageURL,
		ImageID:   fileID,
		Location:  "Internet",
		Tags:      pq.StringArray(strings.Split(tags, ",")),
		Likes:     pq.StringArray{},
	}
	if err := db.WithContext(ctx).Create(post).Error; err != nil {
		return "", fmt.Errorf("failed to create post: %w", err)
	}

	log.Info("Created post: %s by %s", post.Caption, user.Username)
	return post.ID, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
