package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HeroBanner is the main landing banner of the storefront.
type HeroBanner struct {
	Image      string `bson:"image" json:"image"`
	Title      string `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle   string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ButtonText string `bson:"buttonText,omitempty" json:"buttonText,omitempty"`
	ButtonLink string `bson:"buttonLink,omitempty" json:"buttonLink,omitempty"`
}

// ColorPalette drives the storefront theme.
type ColorPalette struct {
	PrimaryColor    string `bson:"primaryColor" json:"primaryColor"`
	TextColor       string `bson:"textColor" json:"textColor"`
	BackgroundColor string `bson:"backgroundColor,omitempty" json:"backgroundColor,omitempty"`
	SurfaceColor    string `bson:"surfaceColor,omitempty" json:"surfaceColor,omitempty"`
	BorderColor     string `bson:"borderColor,omitempty" json:"borderColor,omitempty"`
	SuccessColor    string `bson:"successColor,omitempty" json:"successColor,omitempty"`
	WarningColor    string `bson:"warningColor,omitempty" json:"warningColor,omitempty"`
	ErrorColor      string `bson:"errorColor,omitempty" json:"errorColor,omitempty"`
}

// Branding holds the logo and favicon asset paths.
type Branding struct {
	SiteLogo    string `bson:"siteLogo" json:"siteLogo"`
	AdminLogo   string `bson:"adminLogo" json:"adminLogo"`
	Favicon     string `bson:"favicon,omitempty" json:"favicon,omitempty"`
	LogoAltText string `bson:"logoAltText,omitempty" json:"logoAltText,omitempty"`
}

// ContactInfo is the shop's public contact block.
type ContactInfo struct {
	Email        string `bson:"email" json:"email"`
	Phone        string `bson:"phone" json:"phone"`
	Address      string `bson:"address" json:"address"`
	WorkingHours string `bson:"workingHours" json:"workingHours"`
}

// SocialMedia lists optional social links.
type SocialMedia struct {
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Telegram  string `bson:"telegram,omitempty" json:"telegram,omitempty"`
	WhatsApp  string `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
}

// SiteSettings is the single canonical settings record. When several exist,
// the most recently created one wins; creation is rejected once any exists.
type SiteSettings struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SiteName        string             `bson:"siteName,omitempty" json:"siteName,omitempty"`
	SiteDescription string             `bson:"siteDescription,omitempty" json:"siteDescription,omitempty"`
	SiteTitle       string             `bson:"siteTitle,omitempty" json:"siteTitle,omitempty"`
	HeroBanner      HeroBanner         `bson:"heroBanner" json:"heroBanner"`
	ColorPalette    ColorPalette       `bson:"colorPalette" json:"colorPalette"`
	Branding        Branding           `bson:"branding" json:"branding"`
	ContactInfo     ContactInfo        `bson:"contactInfo" json:"contactInfo"`
	SocialMedia     *SocialMedia       `bson:"socialMedia,omitempty" json:"socialMedia,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
