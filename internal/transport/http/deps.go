package http

import (
	"github.com/storefront-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/storefront-api/internal/infrastructure/jwt"
	s3infra "github.com/storefront-api/internal/infrastructure/s3"
	"github.com/storefront-api/internal/infrastructure/smtp"
	"github.com/storefront-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo     *dynamo.UserRepo
	OtpRepo      *dynamo.OtpRepo
	ProductRepo  *dynamo.ProductRepo
	CategoryRepo *dynamo.CategoryRepo
	OrderRepo    *dynamo.OrderRepo
	SettingRepo  *dynamo.SettingRepo
	UploadRepo   *dynamo.UploadRepo
	S3Store      *s3infra.Store
	Mailer       smtp.Mailer
	SMSSender    sns.SMSSender
	JWTProvider  *jwtinfra.Provider
}
