package server

import (
	"github.com/Chifaaan/kdmpxkfa/internal/handler"
	appmiddleware "github.com/Chifaaan/kdmpxkfa/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	paymentHandler  *handler.PaymentHandler
	jwtSecret       string
}

func NewServer(checkoutHandler *handler.CheckoutHandler, paymentHandler *handler.PaymentHandler, jwtSecret string) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		checkoutHandler: checkoutHandler,
		paymentHandler:  paymentHandler,
		jwtSecret:       jwtSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- gateway callbacks (no auth, signature-checked) --------
	api.POST("/payments/notification", s.paymentHandler.Webhook)

	// -------- authenticated client surface --------
	auth := api.Group("", appmiddleware.AuthMiddleware(s.jwtSecret))
	auth.POST("/checkout", s.checkoutHandler.Checkout)
	auth.GET("/orders/:id/snap-token", s.paymentHandler.SnapToken)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
