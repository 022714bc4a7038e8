package api

// Credentials is the body of POST /login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the body of POST /register.
type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required"`
}

// Token is the response of POST /login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Account is the response of POST /register.
type Account struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Generated is the response of POST /generate-learning-content.
type Generated struct {
	ID      string `json:"_id,omitempty"`
	Message string `json:"message,omitempty"`
}

type markReadBody struct {
	SubTopic string `json:"sub_topic"`
}

// errorBody covers both {"detail": "..."} and {"message": "..."} replies.
// detail is a list of objects for request validation failures.
type errorBody struct {
	Detail  any    `json:"detail"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if s, ok := b.Detail.(string); ok && s != "" {
		return s
	}
	if list, ok := b.Detail.([]any); ok && len(list) > 0 {
		if first, ok := list[0].(map[string]any); ok {
			if msg, ok := first["msg"].(string); ok {
				return msg
			}
		}
	}
	return b.Message
}
