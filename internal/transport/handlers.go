package transport

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eatshare/eats-back/internal/models"
)

func (s *HTTPServer) UserList(c *fiber.Ctx) error {
	resp, err := s.svc.UserList(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) UserGet(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	resp, err := s.svc.UserGet(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) UserCreate(c *fiber.Ctx) error {
	req := models.UserReq{}
	if err := Bind(c, &req); err != nil {
		return err
	}

	resp, err := s.svc.UserCreate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *HTTPServer) UserUpdate(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := models.UserReq{}
	if err := Bind(c, &req); err != nil {
		return err
	}

	resp, err := s.svc.UserUpdate(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) UserDelete(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.svc.UserDelete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *HTTPServer) EatsList(c *fiber.Ctx) error {
	resp, err := s.svc.EatsList(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) EatsGet(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	resp, err := s.svc.EatsGet(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) EatsCreate(c *fiber.Ctx) error {
	req := models.EatsReq{}
	if err := Bind(c, &req); err != nil {
		return err
	}

	resp, err := s.svc.EatsCreate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *HTTPServer) EatsUpdate(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := models.EatsReq{}
	if err := Bind(c, &req); err != nil {
		return err
	}

	resp, err := s.svc.EatsUpdate(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) EatsDelete(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.svc.EatsDelete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *HTTPServer) DibsList(c *fiber.Ctx) error {
	resp, err := s.svc.DibsList(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) DibsGet(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	resp, err := s.svc.DibsGet(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) DibsCreate(c *fiber.Ctx) error {
	req := models.DibsReq{}
	if err := Bind(c, &req); err != nil {
		return err
	}

	resp, err := s.svc.DibsCreate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *HTTPServer) DibsUpdate(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := models.DibsReq{}
	if err := Bind(c, &req); err != nil {
		return err
	}

	resp, err := s.svc.DibsUpdate(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) DibsDelete(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.svc.DibsDelete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *HTTPServer) ReviewList(c *fiber.Ctx) error {
	resp, err := s.svc.ReviewList(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) ReviewGet(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	resp, err := s.svc.ReviewGet(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) ReviewCreate(c *fiber.Ctx) error {
	req := models.ReviewReq{}
	if err := Bind(c, &req); err != nil {
		return err
	}

	resp, err := s.svc.ReviewCreate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *HTTPServer) ReviewUpdate(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := models.ReviewReq{}
	if err := Bind(c, &req); err != nil {
		return err
	}

	resp, err := s.svc.ReviewUpdate(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) ReviewDelete(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.svc.ReviewDelete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *HTTPServer) FoodTagList(c *fiber.Ctx) error {
	resp, err := s.svc.FoodTagList(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) FoodTagGet(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	resp, err := s.svc.FoodTagGet(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) FoodTagCreate(c *fiber.Ctx) error {
	req := models.FoodTagReq{}
	if err := Bind(c, &req); err != nil {
		return err
	}

	resp, err := s.svc.FoodTagCreate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *HTTPServer) FoodTagUpdate(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := models.FoodTagReq{}
	if err := Bind(c, &req); err != nil {
		return err
	}

	resp, err := s.svc.FoodTagUpdate(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *HTTPServer) FoodTagDelete(c *fiber.Ctx) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.svc.FoodTagDelete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
