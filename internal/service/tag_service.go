package service

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/authz"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/repository"
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxTagNameLength = 50

type TagService interface {
	ListInfluencerTags(ctx context.Context) ([]*dto.TagUsageDTO, error)
	ListMaterialTags(ctx context.Context) ([]*dto.TagUsageDTO, error)
	CreateInfluencerTag(ctx context.Context, actor *model.Actor, tagDTO *dto.TagDTO) (*dto.TagVO, error)
	CreateMaterialTag(ctx context.Context, actor *model.Actor, tagDTO *dto.TagDTO) (*dto.TagVO, error)
}

type TagServiceImpl struct {
	tagRepo repository.TagRepo
	policy  authz.AccessPolicy
}

func NewTagService(tagRepo repository.TagRepo, policy authz.AccessPolicy) TagService {
	return &TagServiceImpl{tagRepo: tagRepo, policy: policy}
}

func (s *TagServiceImpl) ListInfluencerTags(ctx context.Context) ([]*dto.TagUsageDTO, error) {
	usages, err := s.tagRepo.ListInfluencerTagUsage(ctx)
	if err != nil {
		return nil, err
	}
	return toTagUsageDTOs(usages), nil
}

func (s *TagServiceImpl) ListMaterialTags(ctx context.Context) ([]*dto.TagUsageDTO, error) {
	usages, err := s.tagRepo.ListMaterialTagUsage(ctx)
	if err != nil {
		return nil, err
	}
	return toTagUsageDTOs(usages), nil
}

func (s *TagServiceImpl) CreateInfluencerTag(ctx context.Context, actor *model.Actor, tagDTO *dto.TagDTO) (*dto.TagVO, error) {
	name, err := s.checkCreate(actor, tagDTO)
	if err != nil {
		return nil, err
	}
	tag := &model.InfluencerTag{Name: name, CreatedAt: time.Now()}
	if err = s.tagRepo.CreateInfluencerTag(ctx, tag); err != nil {
		return nil, translateTagError(err)
	}
	return &dto.TagVO{ID: tag.ID, Name: tag.Name, CreatedAt: tag.CreatedAt}, nil
}

func (s *TagServiceImpl) CreateMaterialTag(ctx context.Context, actor *model.Actor, tagDTO *dto.TagDTO) (*dto.TagVO, error) {
	name, err := s.checkCreate(actor, tagDTO)
	if err != nil {
		return nil, err
	}
	tag := &model.MaterialTag{Name: name, CreatedAt: time.Now()}
	if err = s.tagRepo.CreateMaterialTag(ctx, tag); err != nil {
		return nil, translateTagError(err)
	}
	return &dto.TagVO{ID: tag.ID, Name: tag.Name, CreatedAt: tag.CreatedAt}, nil
}

// checkCreate 仅商务可新建标签，名称去除首尾空白后不能为空且不超过 50 个字符
func (s *TagServiceImpl) checkCreate(actor *model.Actor, tagDTO *dto.TagDTO) (string, error) {
	if err := authorize(s.policy, actor, model.Resource{Kind: model.KindTag}, model.ActionCreate); err != nil {
		return "", err
	}
	if tagDTO == nil {
		return "", ErrParamInvalid
	}
	name := strings.TrimSpace(tagDTO.Name)
	if name == "" || utf8.RuneCountInString(name) > maxTagNameLength {
		return "", ErrParamInvalid
	}
	return name, nil
}

func translateTagError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrTagExist
	}
	return err
}
