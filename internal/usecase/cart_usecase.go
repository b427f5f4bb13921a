package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableside/internal/domain/model"
	"tableside/internal/event"
	repo "tableside/internal/repository"
)

// CartUsecase はテーブル単位のカート（DRAFT注文）の業務ロジックです。
// ゲストの操作は全部 (restaurantSlug, tableCode) のコンテキスト付きで来る。
type CartUsecase struct {
	restaurantRepo repo.RestaurantRepository
	tableRepo      repo.DiningTableRepository
	menuRepo       repo.MenuRepository
	orderRepo      repo.OrderRepository
	orderItemRepo  repo.OrderItemRepository
	tx             repo.TransactionManager
	events         event.Publisher
}

func NewCartUsecase(
	restaurantRepo repo.RestaurantRepository,
	tableRepo repo.DiningTableRepository,
	menuRepo repo.MenuRepository,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	tx repo.TransactionManager,
	events event.Publisher,
) *CartUsecase {
	return &CartUsecase{
		restaurantRepo: restaurantRepo,
		tableRepo:      tableRepo,
		menuRepo:       menuRepo,
		orderRepo:      orderRepo,
		orderItemRepo:  orderItemRepo,
		tx:             tx,
		events:         events,
	}
}

// ゲストセッションのコンテキスト。QRのURLから来る。
type CartContext struct {
	RestaurantSlug string
	TableCode      string
	GuestSessionID string
}

type AddItemInput struct {
	MenuItemID int64
	Quantity   int64
	Notes      string
}

type DecrementInput struct {
	MenuItemID int64
	Amount     int64
	Notes      string
}

type CartLineResponse struct {
	ID             int64  `json:"id"`
	MenuItemID     int64  `json:"menu_item_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int64  `json:"quantity"`
	Notes          string `json:"notes,omitempty"`
}

// 合計は常に明細から再計算した値。
type CartResponse struct {
	OrderID    int64              `json:"order_id"`
	Items      []CartLineResponse `json:"items"`
	TotalCents int64              `json:"total_cents"`
}

type OrderItemOutput struct {
	MenuItemID     int64  `json:"menu_item_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int64  `json:"quantity"`
	Notes          string `json:"notes,omitempty"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	RestaurantID  int64             `json:"restaurant_id"`
	DiningTableID int64             `json:"dining_table_id"`
	Status        string            `json:"status"`
	TotalCents    int64             `json:"total_cents"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// slug/codeを検証して店舗とテーブルに解決する。
func (u *CartUsecase) resolveTable(ctx context.Context, cctx CartContext) (model.Restaurant, model.DiningTable, error) {
	slug := strings.TrimSpace(cctx.RestaurantSlug)
	code := strings.TrimSpace(cctx.TableCode)
	if slug == "" || code == "" {
		return model.Restaurant{}, model.DiningTable{}, ErrInvalidContext
	}

	rest, err := u.restaurantRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, model.DiningTable{}, ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, model.DiningTable{}, ErrDB
	}

	table, err := u.tableRepo.FindByRestaurantAndCode(ctx, rest.ID, code)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, model.DiningTable{}, ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, model.DiningTable{}, ErrDB
	}

	return rest, table, nil
}

// ResolveDraft はテーブルのDRAFT注文を取得（無ければ作って即永続化）し、そのIDを返す。
func (u *CartUsecase) ResolveDraft(ctx context.Context, cctx CartContext) (int64, error) {
	rest, table, err := u.resolveTable(ctx, cctx)
	if err != nil {
		return 0, err
	}

	order, err := u.orderRepo.FindOrCreateDraft(ctx, rest.ID, table.ID, cctx.GuestSessionID)
	if err != nil {
		return 0, ErrDB
	}
	return order.ID, nil
}

// AddItem はカートに追加（同一の品目＋メモは数量加算）。
// 数量0以下は1に正規化する（エラーにはしない）。
func (u *CartUsecase) AddItem(ctx context.Context, cctx CartContext, in AddItemInput) (int64, error) {
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}
	notes := strings.TrimSpace(in.Notes)

	rest, table, err := u.resolveTable(ctx, cctx)
	if err != nil {
		return 0, err
	}

	// 品目チェック（この店舗の提供中のものだけ）
	item, err := u.menuRepo.FindItemByID(ctx, in.MenuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, ErrItemNotFound
	}
	if err != nil {
		return 0, ErrDB
	}
	if item.RestaurantID != rest.ID || !item.IsAvailable {
		return 0, ErrItemNotFound
	}

	order, err := u.orderRepo.FindOrCreateDraft(ctx, rest.ID, table.ID, cctx.GuestSessionID)
	if err != nil {
		return 0, ErrDB
	}

	// Upsert（同一の品目＋メモは加算）
	// 新規行のときだけ現在のメニュー価格をスナップショットする
	if err := u.orderItemRepo.UpsertLine(ctx, order.ID, item.ID, notes, qty, item.PriceCents); err != nil {
		return 0, ErrDB
	}

	return order.ID, nil
}

// UpdateQuantity は明細の数量変更。最低1にクランプする（この経路では削除しない）。
// 明細が無い・このテーブルのDRAFTの明細でない場合は黙って成功（no-op）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, cctx CartContext, lineID int64, qty int64) error {
	rest, table, err := u.resolveTable(ctx, cctx)
	if err != nil {
		return err
	}

	draft, err := u.orderRepo.FindDraftByTable(ctx, rest.ID, table.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return ErrDB
	}

	owned, err := u.orderItemRepo.IsOwnedByOrder(ctx, lineID, draft.ID)
	if err != nil {
		return ErrDB
	}
	if !owned {
		return nil
	}

	if qty < 1 {
		qty = 1
	}

	if err := u.orderItemRepo.UpdateQuantity(ctx, lineID, qty); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return ErrDB
	}
	return nil
}

// DecrementItem は(品目, メモ)で明細を探して数量を減らす。0以下になったら明細ごと削除。
// 戻り値は残りの数量合計（DRAFTが無ければ0）。対象が無くてもエラーにしない。
func (u *CartUsecase) DecrementItem(ctx context.Context, cctx CartContext, in DecrementInput) (int64, error) {
	amount := in.Amount
	if amount <= 0 {
		amount = 1
	}
	notes := strings.TrimSpace(in.Notes)

	rest, table, err := u.resolveTable(ctx, cctx)
	if err != nil {
		return 0, err
	}

	draft, err := u.orderRepo.FindDraftByTable(ctx, rest.ID, table.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, ErrDB
	}

	line, err := u.orderItemRepo.FindLine(ctx, draft.ID, in.MenuItemID, notes)
	if errors.Is(err, repo.ErrNotFound) {
		return u.remainingCount(ctx, draft.ID)
	}
	if err != nil {
		return 0, ErrDB
	}

	newQty := line.Quantity - amount
	if newQty <= 0 {
		if err := u.orderItemRepo.DeleteByID(ctx, line.ID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return 0, ErrDB
		}
	} else {
		if err := u.orderItemRepo.UpdateQuantity(ctx, line.ID, newQty); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return 0, ErrDB
		}
	}

	return u.remainingCount(ctx, draft.ID)
}

func (u *CartUsecase) remainingCount(ctx context.Context, orderID int64) (int64, error) {
	total, err := u.orderItemRepo.TotalQuantityByOrderID(ctx, orderID)
	if err != nil {
		return 0, ErrDB
	}
	return total, nil
}

// RemoveLine は明細を無条件に削除。無ければ黙って成功（冪等な削除）。
func (u *CartUsecase) RemoveLine(ctx context.Context, cctx CartContext, lineID int64) error {
	rest, table, err := u.resolveTable(ctx, cctx)
	if err != nil {
		return err
	}

	draft, err := u.orderRepo.FindDraftByTable(ctx, rest.ID, table.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return ErrDB
	}

	owned, err := u.orderItemRepo.IsOwnedByOrder(ctx, lineID, draft.ID)
	if err != nil {
		return ErrDB
	}
	if !owned {
		return nil
	}

	if err := u.orderItemRepo.DeleteByID(ctx, lineID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return ErrDB
	}
	return nil
}

// GetCart は現在のカートを返す。DRAFTが無ければ空のカートを返す。
func (u *CartUsecase) GetCart(ctx context.Context, cctx CartContext) (CartResponse, error) {
	rest, table, err := u.resolveTable(ctx, cctx)
	if err != nil {
		return CartResponse{}, err
	}

	draft, err := u.orderRepo.FindDraftByTable(ctx, rest.ID, table.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{Items: []CartLineResponse{}}, nil
	}
	if err != nil {
		return CartResponse{}, ErrDB
	}

	return u.buildCartResponse(ctx, draft.ID)
}

// Submit はDRAFTをSUBMITTEDにする。明細ゼロなら拒否。
// ステータス更新とPENDING決済の作成は1トランザクション（決済開始の入口はここだけ）。
// 成功後は同じテーブルのResolveDraftが新しいDRAFTを作る。
func (u *CartUsecase) Submit(ctx context.Context, cctx CartContext) (int64, error) {
	rest, table, err := u.resolveTable(ctx, cctx)
	if err != nil {
		return 0, err
	}

	var (
		orderID    int64
		totalCents int64
	)

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		draft, err := r.Orders().FindDraftByTable(ctx, rest.ID, table.ID)
		if errors.Is(err, repo.ErrNotFound) {
			//DRAFT以外からの提出はできない（再提出もここで弾かれる）
			return ErrNotFound
		}
		if err != nil {
			return ErrDB
		}

		items, err := r.OrderItems().ListByOrderID(ctx, draft.ID)
		if err != nil {
			return ErrDB
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		if err := r.Orders().UpdateStatus(ctx, draft.ID, model.OrderStatusSubmitted); err != nil {
			return ErrDB
		}

		totalCents = model.OrderTotalCents(items)

		//決済はまだ無いはずだが、作成は冪等にしておく
		_, err = r.Payments().FindByOrderID(ctx, draft.ID)
		if errors.Is(err, repo.ErrNotFound) {
			now := time.Now().UTC()
			if _, err := r.Payments().Create(ctx, model.Payment{
				OrderID:     draft.ID,
				AmountCents: totalCents,
				Status:      model.PaymentStatusPending,
				Provider:    model.PaymentProviderDemo,
				CreatedAt:   now,
				UpdatedAt:   now,
			}); err != nil {
				return ErrDB
			}
		} else if err != nil {
			return ErrDB
		}

		orderID = draft.ID
		return nil
	})

	if err != nil {
		return 0, err
	}

	//通知の失敗で注文は失敗させない
	_ = u.events.PublishOrderEvent(ctx, event.OrderEvent{
		Type:          event.TypeOrderSubmitted,
		OrderID:       orderID,
		RestaurantID:  rest.ID,
		DiningTableID: table.ID,
		Status:        string(model.OrderStatusSubmitted),
		TotalCents:    totalCents,
		OccurredAt:    time.Now().UTC(),
	})

	return orderID, nil
}

// ListMyOrders はこのテーブルの注文履歴（CANCELLED除く、新しい順、直近20件）。
func (u *CartUsecase) ListMyOrders(ctx context.Context, cctx CartContext) ([]OrderOutput, error) {
	rest, table, err := u.resolveTable(ctx, cctx)
	if err != nil {
		return []OrderOutput{}, err
	}

	orders, err := u.orderRepo.ListByTable(ctx, rest.ID, table.ID, 20)
	if err != nil {
		return []OrderOutput{}, ErrDB
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, ErrDB
		}
		outs = append(outs, toOrderOutput(ctx, u.menuRepo, o, items))
	}
	return outs, nil
}

// 明細にメニュー名を付けてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, orderID int64) (CartResponse, error) {
	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return CartResponse{}, ErrDB
	}

	respItems := make([]CartLineResponse, 0, len(items))
	for _, it := range items {
		name := ""
		if m, err := u.menuRepo.FindItemByID(ctx, it.MenuItemID); err == nil {
			name = m.Name
		}

		respItems = append(respItems, CartLineResponse{
			ID:             it.ID,
			MenuItemID:     it.MenuItemID,
			Name:           name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
			Notes:          it.Notes,
		})
	}

	return CartResponse{
		OrderID:    orderID,
		Items:      respItems,
		TotalCents: model.OrderTotalCents(items),
	}, nil
}

// メニュー名を引いて注文の出力を作る。KDS一覧と共用。
func toOrderOutput(ctx context.Context, menuRepo repo.MenuRepository, o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		name := ""
		if m, err := menuRepo.FindItemByID(ctx, it.MenuItemID); err == nil {
			name = m.Name
		}
		outItems = append(outItems, OrderItemOutput{
			MenuItemID:     it.MenuItemID,
			Name:           name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
			Notes:          it.Notes,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		RestaurantID:  o.RestaurantID,
		DiningTableID: o.DiningTableID,
		Status:        string(o.Status),
		TotalCents:    model.OrderTotalCents(items),
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
