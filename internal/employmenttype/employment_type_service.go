package employmenttype

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	employmenttypeerrors "go-empledger/internal/employmenttype/errors"
	"go-empledger/internal/shared/apperror"
	"go-empledger/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	CacheKey = "employment_types:all"
	CacheTTL = time.Hour
)

//go:generate mockgen -source=employment_type_service.go -destination=mock/employment_type_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]EmploymentTypeResponse, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, req CreateEmploymentTypeRequest) (EmploymentTypeResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employmenttype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employmenttype.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]EmploymentTypeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CacheKey).Result(); err == nil {
			var resp []EmploymentTypeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil && len(resp) > 0 {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(CacheKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("get employment types failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}
		if len(types) == 0 {
			return nil, employmenttypeerrors.ErrNoEmploymentTypes
		}

		resp := mapToListResponse(types)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, CacheKey, data, CacheTTL).Err(); err != nil {
					s.logger.Warn("cache employment types failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmploymentTypeResponse), nil
}

// Exists reports whether id names a catalog entry. Malformed ids do not.
func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return false, nil
	}
	ok, err := s.repo.ExistsByID(ctx, parsed)
	if err != nil {
		return false, mapRepositoryError(err)
	}
	return ok, nil
}

func (s *service) Create(ctx context.Context, req CreateEmploymentTypeRequest) (EmploymentTypeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	req.Name = strings.TrimSpace(req.Name)
	req.PayCadence = strings.ToLower(strings.TrimSpace(req.PayCadence))
	if err := apperror.ValidateStruct(req); err != nil {
		return EmploymentTypeResponse{}, err
	}

	et := &EmploymentType{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		PayCadence:    req.PayCadence,
		ContractTerms: req.ContractTerms,
	}
	if err := s.repo.Create(ctx, et); err != nil {
		s.logger.Error("create employment type failed", zap.String("request_id", rid), zap.Error(err))
		return EmploymentTypeResponse{}, mapRepositoryError(err)
	}

	s.invalidateCache(ctx)
	s.logger.Info("create employment type success",
		zap.String("request_id", rid),
		zap.String("employment_type_id", et.ID.String()),
	)
	return mapToResponse(*et), nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employment types cache",
			zap.Error(err),
			zap.String("key", CacheKey),
		)
	}
}

func mapToResponse(et EmploymentType) EmploymentTypeResponse {
	return EmploymentTypeResponse{
		ID:            et.ID.String(),
		Name:          et.Name,
		Description:   et.Description,
		PayCadence:    et.PayCadence,
		ContractTerms: et.ContractTerms,
		CreatedAt:     et.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(types []EmploymentType) []EmploymentTypeResponse {
	res := make([]EmploymentTypeResponse, len(types))
	for i, t := range types {
		res[i] = mapToResponse(t)
	}
	return res
}
