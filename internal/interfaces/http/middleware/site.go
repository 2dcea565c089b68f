package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tindahan/backend/internal/domain/site"
	"github.com/tindahan/backend/internal/interfaces/http/dto"
)

// Site context keys and headers
const (
	SiteKey             = "site"
	SiteSubdomainHeader = "X-Site-Subdomain"
)

// SiteMiddlewareConfig holds configuration for storefront site resolution
type SiteMiddlewareConfig struct {
	// Websites resolves subdomains to tenant records
	Websites site.WebsiteRepository
	// BaseDomain is the domain subdomains hang off (e.g. "tindahan.app").
	// When empty, only the X-Site-Subdomain header is consulted.
	BaseDomain string
	// RequirePublished rejects storefront requests for unpublished sites
	RequirePublished bool
	// Logger for middleware logging
	Logger *zap.Logger
}

// SiteResolution resolves the tenant website for every storefront request.
// Resolution order: X-Site-Subdomain header, then the Host subdomain. The
// resolved website is stored in the gin context; requests that resolve to
// nothing are rejected before reaching any handler.
func SiteResolution(cfg SiteMiddlewareConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		subdomain := strings.TrimSpace(c.GetHeader(SiteSubdomainHeader))
		if subdomain == "" && cfg.BaseDomain != "" {
			subdomain = subdomainFromHost(c.Request.Host, cfg.BaseDomain)
		}

		if subdomain == "" {
			respondSiteNotResolved(c, "No storefront subdomain in request")
			return
		}

		website, err := cfg.Websites.FindBySubdomain(c.Request.Context(), subdomain)
		if err != nil {
			logger.Debug("Site resolution failed",
				zap.String("subdomain", subdomain),
				zap.Error(err),
			)
			respondSiteNotResolved(c, "Unknown storefront")
			return
		}

		if cfg.RequirePublished && !website.IsPublished() {
			respondSiteNotResolved(c, "Storefront is not published")
			return
		}

		c.Set(SiteKey, website)
		c.Next()
	}
}

// subdomainFromHost extracts the storefront subdomain from the request host.
// e.g. "cafe.tindahan.app" with baseDomain "tindahan.app" returns "cafe".
func subdomainFromHost(host, baseDomain string) string {
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}
	if !strings.HasSuffix(host, "."+baseDomain) {
		return ""
	}
	subdomain := strings.TrimSuffix(host, "."+baseDomain)
	if subdomain == "" || subdomain == "www" {
		return ""
	}
	parts := strings.Split(subdomain, ".")
	return parts[len(parts)-1]
}

func respondSiteNotResolved(c *gin.Context, message string) {
	requestID := getRequestIDFromContext(c)
	c.AbortWithStatusJSON(http.StatusNotFound,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeSiteNotResolved, message, requestID))
}

// GetSite retrieves the resolved website from gin.Context
func GetSite(c *gin.Context) *site.Website {
	if v, exists := c.Get(SiteKey); exists {
		if w, ok := v.(*site.Website); ok {
			return w
		}
	}
	return nil
}

// MustGetSite retrieves the resolved website or panics. Use only behind
// SiteResolution.
func MustGetSite(c *gin.Context) *site.Website {
	w := GetSite(c)
	if w == nil {
		panic("site not found in context")
	}
	return w
}
