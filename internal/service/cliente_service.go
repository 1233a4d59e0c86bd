package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"facturador/internal/apperrors"
	"facturador/internal/dto"
	"facturador/internal/model"
	"facturador/internal/repository"
)

type ClienteService interface {
	Guardar(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
	db   *gorm.DB
}

func NewClienteService(repo repository.ClienteRepository, db *gorm.DB) ClienteService {
	return &clienteService{repo: repo, db: db}
}

// Guardar creates or updates a cliente keyed by NIF, same as the implicit
// upsert that happens when a documento is created for a new client.
func (s *clienteService) Guardar(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		Nombre:       req.Nombre,
		NIF:          req.NIF,
		Direccion:    req.Direccion,
		CodigoPostal: req.CodigoPostal,
		Ciudad:       req.Ciudad,
		Provincia:    req.Provincia,
		Email:        req.Email,
		Telefono:     req.Telefono,
		EsEmpresa:    req.EsEmpresa,
	}
	txErr := runTx(ctx, s.db, func(tx *gorm.DB) error {
		return s.repo.Upsert(ctx, tx, cliente)
	})
	if txErr != nil {
		return nil, apperrors.NewPersistence("guardar cliente", txErr)
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cliente %s", apperrors.ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, apperrors.NewPersistence("cargar cliente", err)
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistence("listar clientes", err)
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:           c.ID.String(),
		Nombre:       c.Nombre,
		NIF:          c.NIF,
		Direccion:    c.Direccion,
		CodigoPostal: c.CodigoPostal,
		Ciudad:       c.Ciudad,
		Provincia:    c.Provincia,
		Email:        c.Email,
		Telefono:     c.Telefono,
		EsEmpresa:    c.EsEmpresa,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}
