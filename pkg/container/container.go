package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"research-blog-backend/internal/config"
	"research-blog-backend/internal/infrastructure/cache"
	"research-blog-backend/internal/infrastructure/database"
	"research-blog-backend/internal/infrastructure/storage"
	"research-blog-backend/internal/shared/middleware"
	"research-blog-backend/internal/shared/security"
	"research-blog-backend/pkg/jwt"
	"research-blog-backend/pkg/password"

	"research-blog-backend/internal/domains/author"
	authorHandler "research-blog-backend/internal/domains/author/handler"
	authorRepo "research-blog-backend/internal/domains/author/repository"
	authorService "research-blog-backend/internal/domains/author/service"
	"research-blog-backend/internal/domains/post"
	postHandler "research-blog-backend/internal/domains/post/handler"
	postRepo "research-blog-backend/internal/domains/post/repository"
	postService "research-blog-backend/internal/domains/post/service"
	"research-blog-backend/internal/domains/team"
	teamHandler "research-blog-backend/internal/domains/team/handler"
	teamRepo "research-blog-backend/internal/domains/team/repository"
	teamService "research-blog-backend/internal/domains/team/service"
	"research-blog-backend/internal/domains/user"
	userHandler "research-blog-backend/internal/domains/user/handler"
	userRepo "research-blog-backend/internal/domains/user/repository"
	userService "research-blog-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa tất cả dependencies của application.
// Redis and MinIO are optional: when they are unavailable the fields that
// depend on them stay nil and the features degrade instead of failing startup.
type Container struct {
	// INFRASTRUCTURE
	Config  *config.Config
	DB      *database.PostgresDB
	Redis   *cache.RedisStore    // nil when Redis is unreachable
	Storage *storage.MinIOStorage // nil when MinIO is disabled or unreachable

	JWTManager *jwt.Manager
	Hasher     *password.Hasher
	Images     *storage.ImageService

	// Redis-backed auth state. Interfaces, so an absent store is a true nil.
	LoginGuard  user.LoginGuard
	Revoker     user.TokenRevoker
	Revocations middleware.RevocationChecker

	// REPOSITORIES
	UserRepo   user.Repository
	AuthorRepo author.Repository
	TeamRepo   team.Repository
	PostRepo   post.Repository

	// SERVICES
	UserService   user.Service
	AuthorService author.Service
	TeamService   team.Service
	PostService   post.Service

	// HANDLERS
	AuthHandler   *userHandler.AuthHandler
	UserHandler   *userHandler.UserHandler
	AuthorHandler *authorHandler.AuthorHandler
	TeamHandler   *teamHandler.TeamHandler
	PostHandler   *postHandler.PostHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// infrastructure, repositories, services, handlers.
// Only a PostgreSQL failure aborts startup.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI container...")

	c := &Container{Config: cfg}

	// STEP 1: DATABASE
	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// STEP 2: REDIS (non-critical)
	c.initRedis(ctx)

	// STEP 3: OBJECT STORAGE (non-critical)
	c.initStorage(ctx)

	// STEP 4: AUTH PRIMITIVES
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire)
	c.Hasher = password.NewHasher(cfg.Auth.BcryptCost)

	// STEP 5-7: DOMAIN LAYERS
	c.initRepositories()

	if err := c.initServices(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	c.initHandlers()

	log.Info().
		Str("post_owner_kind", cfg.Post.OwnerKind).
		Dur("token_ttl", c.JWTManager.TTL()).
		Bool("redis", c.Redis != nil).
		Bool("storage", c.Storage != nil).
		Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRedis(ctx context.Context) {
	store := cache.NewRedisStore(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := store.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical): login throttling and logout revocation disabled")
		_ = store.Close()
		return
	}
	c.Redis = store

	throttle := security.NewLoginThrottle(store, c.Config.Auth.MaxLoginAttempts, c.Config.Auth.LoginLockout)
	denylist := security.NewTokenDenylist(store)

	c.LoginGuard = throttle
	c.Revoker = denylist
	c.Revocations = denylist
}

func (c *Container) initStorage(ctx context.Context) {
	if !c.Config.MinIO.Enabled {
		log.Info().Msg("MinIO disabled: image uploads unavailable")
		return
	}

	minio, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		log.Warn().Err(err).Msg("MinIO initialization failed (non-critical): image uploads unavailable")
		return
	}
	c.Storage = minio
	c.Images = storage.NewImageService(minio, storage.NewImageProcessor())
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.TeamRepo = teamRepo.NewPostgresRepository(pool)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() error {
	// A nil *ImageService must not leak into the interfaces below.
	var authorImages author.ImageStore
	var teamImages team.ImageStore
	var postImages post.ImageStore
	var userImages user.ImageCleaner
	if c.Images != nil {
		userImages = c.Images
		authorImages = c.Images
		teamImages = c.Images
		postImages = c.Images
	}

	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.Hasher,
		c.JWTManager,
		c.LoginGuard,
		c.Revoker,
		userImages,
	)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, authorImages)
	c.TeamService = teamService.NewTeamService(c.TeamRepo, teamImages)

	kind, err := post.ParseOwnerKind(c.Config.Post.OwnerKind)
	if err != nil {
		return err
	}
	owners, err := c.ownerLookup(kind)
	if err != nil {
		return err
	}
	c.PostService = postService.NewPostService(c.PostRepo, kind, owners, postImages)

	return nil
}

// ownerLookup returns the repository that holds owners of kind.
func (c *Container) ownerLookup(kind post.OwnerKind) (post.OwnerLookup, error) {
	switch kind {
	case post.OwnerUser:
		return c.UserRepo, nil
	case post.OwnerAuthor:
		return c.AuthorRepo, nil
	case post.OwnerTeam:
		return c.TeamRepo, nil
	}
	return nil, fmt.Errorf("no owner repository for kind %q", kind)
}

func (c *Container) initHandlers() {
	c.AuthHandler = userHandler.NewAuthHandler(c.UserService, userHandler.CookieConfig{
		MaxAge: time.Duration(c.Config.JWT.CookieExpireDays) * 24 * time.Hour,
		Secure: c.Config.IsProduction(),
	})
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.TeamHandler = teamHandler.NewTeamHandler(c.TeamService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
}

// ========================================
// HEALTH & CLEANUP
// ========================================

// Health reports the state of each backing service. Only the database
// decides overall health; Redis and MinIO are reported as "disabled" or
// "down" without failing the check.
func (c *Container) Health(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{}
	healthy := true

	if err := c.DB.HealthCheck(ctx); err != nil {
		status["database"] = "down"
		healthy = false
	} else {
		status["database"] = "up"
	}

	status["redis"] = componentStatus(c.Redis != nil, func() error { return c.Redis.HealthCheck(ctx) })
	status["storage"] = componentStatus(c.Storage != nil, func() error { return c.Storage.HealthCheck(ctx) })

	return status, healthy
}

func componentStatus(enabled bool, check func() error) string {
	if !enabled {
		return "disabled"
	}
	if err := check(); err != nil {
		return "down"
	}
	return "up"
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
