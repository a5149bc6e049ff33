package contextkeys

// Custom key type avoids collisions with other context values.
type contextKey string

// DBContextKey is the key under which *gorm.DB is stored in the context.
const DBContextKey = contextKey("db")
