package contextkeys

// Используем кастомный тип, чтобы избежать коллизий в context.Context
type contextKey string

// IdentityKey - ключ gin.Context для аутентифицированного пользователя запроса
const IdentityKey = "identity"

// RequestIDHeader - заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

// IdentityContextKey - тот же пользователь в context.Context запроса
const IdentityContextKey = contextKey("identity")
