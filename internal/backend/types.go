package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role codes issued by the backend.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Order status codes, in lifecycle order.
const (
	StatusPending    = "EN_ATTENTE"
	StatusReceived   = "RECU"
	StatusPrinting   = "EN_COURS_IMPRESSION"
	StatusDone       = "TERMINE"
	StatusDelivering = "EN_COURS_LIVRAISON"
	StatusDelivered  = "LIVREE"
)

// OrderStatuses lists every order status code.
var OrderStatuses = []string{
	StatusPending, StatusReceived, StatusPrinting,
	StatusDone, StatusDelivering, StatusDelivered,
}

// Credentials is the payload of the token endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is returned by the token and social-login endpoints.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
	Role    string `json:"role"`
}

// GoogleProfile is the identity forwarded to the social-login endpoint.
type GoogleProfile struct {
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Picture    string `json:"picture,omitempty"`
	Subject    string `json:"sub,omitempty"`
}

// User is a platform account as returned by the profile and user-list endpoints.
type User struct {
	ID              int       `json:"id"`
	LastName        string    `json:"nom"`
	FirstName       string    `json:"prenom"`
	Email           string    `json:"email"`
	Phone           string    `json:"num_tel,omitempty"`
	PostalCode      string    `json:"code_postal,omitempty"`
	City            string    `json:"ville,omitempty"`
	Country         string    `json:"pays,omitempty"`
	Role            string    `json:"role"`
	Avatar          string    `json:"profils,omitempty"`
	GoogleAvatarURL string    `json:"google_avatar_url,omitempty"`
	JoinedAt        time.Time `json:"date_inscription"`
}

// Registration is the payload of the register endpoint.
type Registration struct {
	LastName        string `json:"nom"`
	FirstName       string `json:"prenom"`
	Email           string `json:"email"`
	Phone           string `json:"num_tel"`
	PostalCode      string `json:"code_postal,omitempty"`
	City            string `json:"ville,omitempty"`
	Country         string `json:"pays,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// PasswordReset is the payload of the reset-password endpoint.
type PasswordReset struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Message is a plain acknowledgement payload.
type Message struct {
	Message string `json:"message"`
}

// Product is a catalog entry.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"categorie"`
	Price         decimal.Decimal `json:"prix"`
	Image         string          `json:"image,omitempty"`
	Feature       string          `json:"future,omitempty"`
	DefaultFormat string          `json:"format_defaut,omitempty"`
	LargeFormat   bool            `json:"grand_format"`
}

// PrintConfiguration is the stored print setup of an order.
type PrintConfiguration struct {
	FormatType  string           `json:"format_type"`
	SmallFormat string           `json:"small_format,omitempty"`
	Width       *decimal.Decimal `json:"largeur,omitempty"`
	Height      *decimal.Decimal `json:"hauteur,omitempty"`
	Paper       string           `json:"paper_type"`
	Finish      string           `json:"finish"`
	Quantity    int              `json:"quantity"`
	Duplex      string           `json:"duplex,omitempty"`
	Binding     string           `json:"binding,omitempty"`
	Cover       string           `json:"cover_paper,omitempty"`
	BookPages   int              `json:"book_pages,omitempty"`
}

// OrderFile describes a file attached to an order.
type OrderFile struct {
	ID           int             `json:"id"`
	Name         string          `json:"nom_fichier"`
	Format       string          `json:"format"`
	Size         decimal.Decimal `json:"taille"`
	Resolution   int             `json:"resolution_dpi"`
	ColorProfile string          `json:"profil_couleur"`
	UploadedAt   time.Time       `json:"date_upload"`
}

// Order is a submitted order as listed by the backend.
type Order struct {
	ID            int                `json:"id"`
	CreatedAt     time.Time          `json:"date_commande"`
	Status        string             `json:"statut"`
	Amount        decimal.Decimal    `json:"montant_total"`
	PaymentMode   string             `json:"mode_paiement"`
	PaymentStatus string             `json:"paiement_status,omitempty"`
	Phone         string             `json:"phone,omitempty"`
	Configuration PrintConfiguration `json:"configuration"`
	Files         []OrderFile        `json:"fichiers"`
	Customer      string             `json:"utilisateur,omitempty"`
	DeletedAt     *time.Time         `json:"deleted_at,omitempty"`
}

// Field is one form field of a multipart order submission.
type Field struct {
	Name  string
	Value string
}

// OrderSubmission is the multipart body of a new order.
type OrderSubmission struct {
	Fields   []Field
	FileName string
	File     []byte
}

// OrderReceipt is the response of the order endpoint.
type OrderReceipt struct {
	Success       bool            `json:"success"`
	OrderID       int             `json:"commande_id"`
	PaymentStatus string          `json:"paiement_status"`
	Amount        decimal.Decimal `json:"montant_total"`
	Error         string          `json:"error,omitempty"`
}

// Sender identifies the author of a notification.
type Sender struct {
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Email     string `json:"email"`
}

// Notification is a message exchanged between users and administrators.
type Notification struct {
	ID         int        `json:"id"`
	Message    string     `json:"message"`
	IsRead     bool       `json:"is_read"`
	CreatedAt  time.Time  `json:"created_at"`
	Sender     *Sender    `json:"sender_info,omitempty"`
	IsSentByMe bool       `json:"is_sent_by_me,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Totals are the headline figures of the admin dashboard.
type Totals struct {
	Users    int             `json:"utilisateurs"`
	Orders   int             `json:"commandes"`
	Products int             `json:"produits"`
	Files    int             `json:"fichiers"`
	Revenue  decimal.Decimal `json:"revenu"`
}

// MonthlyCount is the number of orders placed in one month.
type MonthlyCount struct {
	Month string `json:"mois"`
	Count int    `json:"nombre"`
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status string `json:"statut"`
	Count  int    `json:"count"`
}

// RecentOrder is an order row of the admin dashboard.
type RecentOrder struct {
	ID        int             `json:"id"`
	LastName  string          `json:"utilisateur__nom"`
	FirstName string          `json:"utilisateur__prenom"`
	Status    string          `json:"statut"`
	Amount    decimal.Decimal `json:"montant_total"`
	CreatedAt time.Time       `json:"date_commande"`
}

// RecentUser is a user row of the admin dashboard.
type RecentUser struct {
	LastName  string    `json:"nom"`
	FirstName string    `json:"prenom"`
	Email     string    `json:"email"`
	JoinedAt  time.Time `json:"date_inscription"`
}

// AdminDashboard aggregates platform activity for administrators.
type AdminDashboard struct {
	Totals       Totals         `json:"totaux"`
	ByMonth      []MonthlyCount `json:"commandes_par_mois"`
	ByStatus     []StatusCount  `json:"commandes_par_statut"`
	RecentOrders []RecentOrder  `json:"dernieres_commandes"`
	RecentUsers  []RecentUser   `json:"utilisateurs_recents"`
}

// UserDashboard aggregates the activity of the signed-in user.
type UserDashboard struct {
	Email               string          `json:"user_email"`
	TotalOrders         int             `json:"total_commandes"`
	TotalAmount         decimal.Decimal `json:"montant_total"`
	TotalFiles          int             `json:"total_fichiers"`
	UnreadNotifications int             `json:"notifications_non_lues"`
	ByMonth             []MonthlyCount  `json:"commandes_par_mois"`
	RecentOrders        []Order         `json:"dernieres_commandes"`
	RecentNotifications []Notification  `json:"dernieres_notifications"`
}

// Count is a bare counter payload.
type Count struct {
	Count int `json:"count"`
}

// UnreadCount is the payload of the unread-count endpoint.
type UnreadCount struct {
	UnreadCount int `json:"unread_count"`
}
