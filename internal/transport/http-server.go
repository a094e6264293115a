package transport

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/eatshare/eats-back/internal/config"
	"github.com/eatshare/eats-back/internal/db"
	"github.com/eatshare/eats-back/internal/service"
	"github.com/eatshare/eats-back/internal/validation"
)

const censored = "$censored"

var (
	Module = fx.Provide(
		NewHTTPServer,
	)

	censoredFields = []string{"password"}
)

type (
	ErrorResp struct {
		Error string `json:"error"`
	}

	HTTPServer struct {
		app    *fiber.App
		svc    *service.General
		logger *zap.SugaredLogger
	}
)

// New builds the router without binding a port.
func New(svc *service.General, logger *zap.SugaredLogger) *HTTPServer {
	instance := HTTPServer{
		svc:    svc,
		logger: logger,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          instance.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(instance.RequestLogger)
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", instance.Index)
	app.All("/", instance.MethodNotAllowed)

	usersG := app.Group("/users")
	usersG.Get("", instance.UserList)
	usersG.Post("", instance.UserCreate)
	usersG.Get("/:id", instance.UserGet)
	usersG.Patch("/:id", instance.UserUpdate)
	usersG.Delete("/:id", instance.UserDelete)
	usersG.All("", instance.MethodNotAllowed)
	usersG.All("/:id", instance.MethodNotAllowed)

	eatsG := app.Group("/eats")
	eatsG.Get("", instance.EatsList)
	eatsG.Post("", instance.EatsCreate)
	eatsG.Get("/:id", instance.EatsGet)
	eatsG.Patch("/:id", instance.EatsUpdate)
	eatsG.Delete("/:id", instance.EatsDelete)
	eatsG.All("", instance.MethodNotAllowed)
	eatsG.All("/:id", instance.MethodNotAllowed)

	dibsG := app.Group("/dibs")
	dibsG.Get("", instance.DibsList)
	dibsG.Post("", instance.DibsCreate)
	dibsG.Get("/:id", instance.DibsGet)
	dibsG.Patch("/:id", instance.DibsUpdate)
	dibsG.Delete("/:id", instance.DibsDelete)
	dibsG.All("", instance.MethodNotAllowed)
	dibsG.All("/:id", instance.MethodNotAllowed)

	reviewsG := app.Group("/reviews")
	reviewsG.Get("", instance.ReviewList)
	reviewsG.Post("", instance.ReviewCreate)
	reviewsG.Get("/:id", instance.ReviewGet)
	reviewsG.Patch("/:id", instance.ReviewUpdate)
	reviewsG.Delete("/:id", instance.ReviewDelete)
	reviewsG.All("", instance.MethodNotAllowed)
	reviewsG.All("/:id", instance.MethodNotAllowed)

	tagsG := app.Group("/foodtags")
	tagsG.Get("", instance.FoodTagList)
	tagsG.Post("", instance.FoodTagCreate)
	tagsG.Get("/:id", instance.FoodTagGet)
	tagsG.Patch("/:id", instance.FoodTagUpdate)
	tagsG.Delete("/:id", instance.FoodTagDelete)
	tagsG.All("", instance.MethodNotAllowed)
	tagsG.All("/:id", instance.MethodNotAllowed)

	app.Use(instance.NotFound)

	instance.app = app
	return &instance
}

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, svc *service.General, logger *zap.SugaredLogger) *HTTPServer {
	instance := New(svc, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listen := net.JoinHostPort(cfg.Host, cfg.Port)
			ln, err := net.Listen("tcp", listen)
			if err != nil {
				return errors.Wrapf(err, "listen on %s", listen)
			}

			logger.Infof("Starting HTTP server on %s.", listen)
			go func() {
				if err := instance.app.Listener(ln); err != nil {
					logger.Errorw("http server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return instance.app.Shutdown()
		},
	})

	return instance
}

func (s *HTTPServer) Index(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString("<h1>Project Server</h1>")
}

// MethodNotAllowed answers a known path hit with a method it has no route for.
func (s *HTTPServer) MethodNotAllowed(c *fiber.Ctx) error {
	return fiber.ErrMethodNotAllowed
}

func (s *HTTPServer) NotFound(c *fiber.Ctx) error {
	return fiber.ErrNotFound
}

// ErrorHandler renders every failed request as {"error": msg}.
func (s *HTTPServer) ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		fErr *fiber.Error
		vErr *validation.Error
		cErr *db.ConstraintError
	)

	code := fiber.StatusInternalServerError
	msg := "internal server error"
	switch {
	case errors.As(err, &fErr):
		code = fErr.Code
		msg = fErr.Message
	case errors.As(err, &vErr):
		code = fiber.StatusBadRequest
		msg = vErr.Error()
	case errors.Is(err, db.ErrNotFound):
		code = fiber.StatusNotFound
		msg = db.ErrNotFound.Error()
	case errors.As(err, &cErr):
		code = fiber.StatusConflict
		msg = cErr.Error()
	}

	if code >= fiber.StatusInternalServerError {
		s.logger.Errorw("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}

	return c.Status(code).JSON(ErrorResp{Error: msg})
}

// RequestLogger tags each request with an id and logs it once it is answered.
func (s *HTTPServer) RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	requestID := uuid.New().String()
	c.Set(fiber.HeaderXRequestID, requestID)

	if chainErr := c.Next(); chainErr != nil {
		if err := s.ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	fields := []interface{}{
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start).String(),
	}
	if body := c.Body(); len(body) != 0 {
		fields = append(fields, "body", string(censorBody(body)))
	}
	s.logger.Infow("request", fields...)
	return nil
}

// censorBody masks secrets in a JSON request body. Bodies that are not a JSON
// object come back unchanged.
func censorBody(body []byte) []byte {
	m := map[string]interface{}{}
	if err := json.Unmarshal(body, &m); err != nil {
		return body
	}

	changed := false
	for _, field := range censoredFields {
		if _, ok := m[field]; ok {
			m[field] = censored
			changed = true
		}
	}
	if !changed {
		return body
	}

	out, err := json.Marshal(m)
	if err != nil {
		return body
	}
	return out
}

////////

func Bind(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body: "+err.Error())
	}
	return nil
}

func GetParam(c *fiber.Ctx, name string) (string, error) {
	value := c.Params(name)
	if value == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return value, nil
}

func GetAndParseParam(c *fiber.Ctx, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	// ids are stored as signed 64-bit integers, so anything wider cannot exist
	vv, e := strconv.ParseUint(v, 10, 63)
	if errors.Is(e, strconv.ErrRange) {
		return 0, fiber.NewError(fiber.StatusNotFound, db.ErrNotFound.Error())
	}
	if e != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return vv, nil
}
