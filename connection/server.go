package connection

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	aicontroller "focusboard/controller/ai"
	notificationcontroller "focusboard/controller/notification"
	taskcontroller "focusboard/controller/task"
	timelogcontroller "focusboard/controller/timelog"
	"focusboard/repository"
)

// NewStore picks the persistence backend: Firestore when credentials
// are configured, otherwise an in-process store for local development.
func NewStore(ctx context.Context) repository.Store {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		log.Println("Warning: GOOGLE_APPLICATION_CREDENTIALS not set, using in-memory store")
		return repository.NewMemoryStore()
	}
	client, err := FBConnection(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	log.Println("Firestore connection successful")
	return repository.NewFirestoreStore(client)
}

// NewRouter assembles the gin engine with every owner-scoped route
// registered against the given store.
func NewRouter(store repository.Store) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	taskcontroller.TaskController(router, store)
	timelogcontroller.TimeLogController(router, store)
	notificationcontroller.NotificationController(router, store)
	aicontroller.AIController(router, store)

	return router
}

func StartServer() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found or failed to load")
	}

	store := NewStore(context.Background())
	router := NewRouter(store)

	if err := router.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
