package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/handlers"
	"github.com/davronbekov/optika-orders/internal/middleware/authz"
)

type Deps struct {
	DB           *gorm.DB
	Auth         *handlers.AuthHandler
	Pages        *handlers.PageHandler
	Catalog      *handlers.CatalogHandler
	Profile      *handlers.ProfileHandler
	Archive      *handlers.ArchiveHandler
	AdminArchive *handlers.AdminArchiveHandler
	Feedback     *handlers.FeedbackHandler
	Users        *handlers.UserAdminHandler
	Chats        *handlers.ChatAdminHandler
	Uploads      *handlers.UploadHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.Static("/static", "static")

	e.GET("/login", d.Auth.LoginPage)
	e.POST("/login", d.Auth.Login)
	e.GET("/logout", d.Auth.Logout)

	pages := e.Group("", authz.RequireLogin)

	pages.GET("/", d.Pages.Index)
	pages.GET("/catalog/:category", d.Pages.Catalog)
	pages.GET("/profile", d.Profile.Page)
	pages.GET("/archive", d.Archive.Page)
	pages.GET("/feedback", d.Feedback.Page)

	adminPages := e.Group("/admin", authz.RequireLogin, authz.AdminOnly)

	adminPages.GET("", d.Pages.Admin)
	adminPages.GET("/feedback", d.Feedback.AdminPage)
	adminPages.GET("/feedback/pdf", d.Feedback.ExportPDF)
	adminPages.POST("/feedback/clear", d.Feedback.Clear)
	adminPages.GET("/users", d.Users.Page)
	adminPages.POST("/users", d.Users.Create)
	adminPages.POST("/users/edit", d.Users.Edit)
	adminPages.GET("/users/delete", d.Users.Delete)
	adminPages.GET("/chats", d.Chats.Page)
	adminPages.POST("/chats", d.Chats.Add)
	adminPages.POST("/chats/delete", d.Chats.Delete)

	api := e.Group("/api", authz.RequireLoginJSON)

	api.POST("/catalog/:category", d.Catalog.SaveItems)
	api.POST("/profile/row", d.Profile.UpdateRow)
	api.POST("/profile/delete", d.Profile.DeleteRows)
	api.POST("/profile/pdf", d.Profile.DownloadPDF)
	api.POST("/profile/send", d.Profile.Submit)
	api.POST("/archive/pdf", d.Archive.DownloadPDF)
	api.POST("/feedback", d.Feedback.Send)
	api.POST("/uploads", d.Uploads.Upload)

	adminAPI := api.Group("/admin", authz.AdminOnlyJSON)

	adminAPI.GET("/archives", d.AdminArchive.List)
	adminAPI.GET("/archives/items", d.AdminArchive.Items)
	adminAPI.POST("/archives/delete", d.AdminArchive.Delete)
	adminAPI.POST("/archives/clear", d.AdminArchive.Clear)
	adminAPI.POST("/archives/pdf", d.AdminArchive.DownloadAllPDF)
	adminAPI.POST("/archives/telegram", d.AdminArchive.ShareTelegram)
	adminAPI.GET("/archives/excel", d.AdminArchive.ExportExcel)
}
