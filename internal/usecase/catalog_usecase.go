package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	repo "tableside/internal/repository"

	"github.com/skip2/go-qrcode"
)

// メニューのキャッシュの約束。実装はRedis、未設定ならNop。
// キャッシュの失敗はただのミス扱いで、エラーにはしない。
type MenuCache interface {
	GetMenu(ctx context.Context, slug string) (MenuResponse, bool)
	SetMenu(ctx context.Context, slug string, menu MenuResponse)
	InvalidateMenu(ctx context.Context, slug string)
}

// 何もしないキャッシュ。
type NopMenuCache struct{}

func (NopMenuCache) GetMenu(ctx context.Context, slug string) (MenuResponse, bool) {
	return MenuResponse{}, false
}
func (NopMenuCache) SetMenu(ctx context.Context, slug string, menu MenuResponse) {}
func (NopMenuCache) InvalidateMenu(ctx context.Context, slug string)             {}

// CatalogUsecase は店舗・テーブル・メニューの参照系です。
type CatalogUsecase struct {
	restaurantRepo repo.RestaurantRepository
	tableRepo      repo.DiningTableRepository
	menuRepo       repo.MenuRepository
	cache          MenuCache
	guestBaseURL   string
}

func NewCatalogUsecase(
	restaurantRepo repo.RestaurantRepository,
	tableRepo repo.DiningTableRepository,
	menuRepo repo.MenuRepository,
	cache MenuCache,
	guestBaseURL string,
) *CatalogUsecase {
	return &CatalogUsecase{
		restaurantRepo: restaurantRepo,
		tableRepo:      tableRepo,
		menuRepo:       menuRepo,
		cache:          cache,
		guestBaseURL:   strings.TrimRight(guestBaseURL, "/"),
	}
}

type MenuItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url,omitempty"`
}

type MenuCategoryResponse struct {
	ID    int64              `json:"id"`
	Name  string             `json:"name"`
	Items []MenuItemResponse `json:"items"`
}

type MenuResponse struct {
	RestaurantID   int64                  `json:"restaurant_id"`
	RestaurantName string                 `json:"restaurant_name"`
	Slug           string                 `json:"slug"`
	Categories     []MenuCategoryResponse `json:"categories"`
}

type TableResponse struct {
	RestaurantID   int64  `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Slug           string `json:"slug"`
	TableID        int64  `json:"table_id"`
	TableCode      string `json:"table_code"`
	Seats          int64  `json:"seats"`
}

// GetMenu は提供中の品目だけをカテゴリ順で返す。Redisがあればキャッシュ経由。
func (u *CatalogUsecase) GetMenu(ctx context.Context, slug string) (MenuResponse, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return MenuResponse{}, ErrInvalidContext
	}

	if cached, ok := u.cache.GetMenu(ctx, slug); ok {
		return cached, nil
	}

	rest, err := u.restaurantRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return MenuResponse{}, ErrNotFound
	}
	if err != nil {
		return MenuResponse{}, ErrDB
	}

	cats, err := u.menuRepo.ListCategories(ctx, rest.ID)
	if err != nil {
		return MenuResponse{}, ErrDB
	}
	items, err := u.menuRepo.ListItems(ctx, rest.ID)
	if err != nil {
		return MenuResponse{}, ErrDB
	}

	//カテゴリごとに提供中の品目を並べる
	byCategory := make(map[int64][]MenuItemResponse, len(cats))
	for _, it := range items {
		if !it.IsAvailable {
			continue
		}
		byCategory[it.MenuCategoryID] = append(byCategory[it.MenuCategoryID], MenuItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			PriceCents:  it.PriceCents,
			ImageURL:    it.ImageURL,
		})
	}

	resp := MenuResponse{
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		Slug:           rest.Slug,
		Categories:     make([]MenuCategoryResponse, 0, len(cats)),
	}
	for _, c := range cats {
		cis := byCategory[c.ID]
		if cis == nil {
			cis = []MenuItemResponse{}
		}
		resp.Categories = append(resp.Categories, MenuCategoryResponse{
			ID:    c.ID,
			Name:  c.Name,
			Items: cis,
		})
	}

	u.cache.SetMenu(ctx, slug, resp)
	return resp, nil
}

// ResolveTable はゲストのランディング用。slug/codeをテーブルに解決する。
func (u *CatalogUsecase) ResolveTable(ctx context.Context, slug string, code string) (TableResponse, error) {
	slug = strings.TrimSpace(slug)
	code = strings.TrimSpace(code)
	if slug == "" || code == "" {
		return TableResponse{}, ErrInvalidContext
	}

	rest, err := u.restaurantRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return TableResponse{}, ErrNotFound
	}
	if err != nil {
		return TableResponse{}, ErrDB
	}

	table, err := u.tableRepo.FindByRestaurantAndCode(ctx, rest.ID, code)
	if errors.Is(err, repo.ErrNotFound) {
		return TableResponse{}, ErrNotFound
	}
	if err != nil {
		return TableResponse{}, ErrDB
	}

	return TableResponse{
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		Slug:           rest.Slug,
		TableID:        table.ID,
		TableCode:      table.Code,
		Seats:          table.Seats,
	}, nil
}

// TableQR はテーブルに貼るQRコードのPNGを返す。中身はゲスト用URL。
func (u *CatalogUsecase) TableQR(ctx context.Context, slug string, code string) ([]byte, error) {
	t, err := u.ResolveTable(ctx, slug, code)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/t/%s/%s", u.guestBaseURL, t.Slug, t.TableCode)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return nil, NewHTTPError(500, "qr encode failed")
	}
	return png, nil
}
