package handler

// errorResponse mirrors the envelope rendered by the central error handler;
// it exists here for the swagger annotations.
type errorResponse struct {
	Error any `json:"error"`
}

// --- Request / Response types ---
//
// Create payload fields carry no format tags on purpose: the directory
// service aggregates every failing field into one 400 response, which a
// per-field bind-time rejection would short-circuit.

type createUserRequest struct {
	Document     string `json:"document"`
	DocumentType string `json:"document_type"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	LastName1    string `json:"last_name1"`
	LastName2    string `json:"last_name2"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	RePassword   string `json:"re_password"`
}

type createUserResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// updateUserRequest is a partial update: nil means "field not present".
type updateUserRequest struct {
	Name      *string `json:"name"`
	LastName1 *string `json:"last_name1"`
	LastName2 *string `json:"last_name2"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	Password  *string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID           string `json:"id"`
	DocumentType string `json:"document_type,omitempty"`
	Role         string `json:"role"`
	Name         string `json:"name,omitempty"`
	LastName1    string `json:"last_name1,omitempty"`
	LastName2    string `json:"last_name2,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type loginRequest struct {
	Document string `json:"document" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message     string       `json:"message"`
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

type generateQRResponse struct {
	QRImage string `json:"qr_image"` // base64 PNG
	Token   string `json:"token"`
}

type validateQRRequest struct {
	Token string `json:"token" validate:"required"`
}

type validateQRResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
