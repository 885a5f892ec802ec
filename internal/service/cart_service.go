package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/petmart-next/internal/cart"
	"github.com/petmart-next/internal/config"
	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/repository"

	"github.com/google/uuid"
)

// CartOwner 购物车归属：登录用户或匿名会话，二者取其一。
type CartOwner struct {
	UserID     uint
	SessionKey string
}

// UserOwner 登录用户购物车归属
func UserOwner(userID uint) CartOwner {
	return CartOwner{UserID: userID}
}

// SessionOwner 匿名会话购物车归属
func SessionOwner(sessionKey string) CartOwner {
	return CartOwner{SessionKey: strings.TrimSpace(sessionKey)}
}

func (o CartOwner) valid() bool {
	return o.UserID != 0 || o.SessionKey != ""
}

func (o CartOwner) lockKey() string {
	if o.UserID != 0 {
		return fmt.Sprintf("user:%d", o.UserID)
	}
	return "sess:" + o.SessionKey
}

// CartView 购物车响应视图
type CartView struct {
	Items     []cart.Line  `json:"items"`
	ItemCount int          `json:"item_count"`
	Subtotal  models.Money `json:"subtotal"`
	Shipping  models.Money `json:"shipping"`
	Total     models.Money `json:"total"`
}

// CartService 购物车服务。
// 引擎本身不做并发控制，这里按归属键串行化同一购物车上的操作。
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	store       cart.Store
	cfg         config.CartConfig

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, store cart.Store, cfg config.CartConfig) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		store:       store,
		cfg:         cfg,
		locks:       make(map[string]*sync.Mutex),
	}
}

// NewSessionKey 生成匿名购物车会话标识
func (s *CartService) NewSessionKey() string {
	return uuid.NewString()
}

// ValidSessionKey 校验会话标识格式
func (s *CartService) ValidSessionKey(key string) bool {
	key = strings.TrimSpace(key)
	minLength := s.cfg.SessionKeyLength
	if minLength <= 0 {
		minLength = 16
	}
	if len(key) < minLength || len(key) > 128 {
		return false
	}
	for _, r := range key {
		if !isSessionKeyRune(r) {
			return false
		}
	}
	return true
}

func isSessionKeyRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}

func (s *CartService) ownerLock(owner CartOwner) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := owner.lockKey()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// Get 获取购物车视图
func (s *CartService) Get(ctx context.Context, owner CartOwner) (*CartView, error) {
	if !owner.valid() {
		return nil, ErrInvalidParams
	}
	lock := s.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.view(state), nil
}

// AddItem 加入购物车
func (s *CartService) AddItem(ctx context.Context, owner CartOwner, productID uint, quantity int) (*CartView, error) {
	if !owner.valid() || productID == 0 {
		return nil, ErrInvalidParams
	}
	if max := s.cfg.MaxQuantityPerAdd; max > 0 && quantity > max {
		quantity = max
	}

	product, err := s.productRepo.GetByID(strconv.FormatUint(uint64(productID), 10))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	lock := s.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	engine := s.engine(state)
	if err := engine.AddItem(productInfo(product), quantity); err != nil {
		return nil, err
	}
	if err := s.save(ctx, owner, engine.State()); err != nil {
		return nil, err
	}
	return s.view(engine.State()), nil
}

// SetQuantity 设置行项目数量（收口到 [1, 库存快照]）
func (s *CartService) SetQuantity(ctx context.Context, owner CartOwner, productID uint, quantity int) (*CartView, error) {
	if !owner.valid() || productID == 0 {
		return nil, ErrInvalidParams
	}
	lock := s.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	engine := s.engine(state)
	engine.SetQuantity(productID, quantity)
	if err := s.save(ctx, owner, engine.State()); err != nil {
		return nil, err
	}
	return s.view(engine.State()), nil
}

// RemoveItem 移除行项目（幂等）
func (s *CartService) RemoveItem(ctx context.Context, owner CartOwner, productID uint) (*CartView, error) {
	if !owner.valid() || productID == 0 {
		return nil, ErrInvalidParams
	}
	lock := s.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	engine := s.engine(state)
	engine.RemoveItem(productID)
	if err := s.save(ctx, owner, engine.State()); err != nil {
		return nil, err
	}
	return s.view(engine.State()), nil
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, owner CartOwner) (*CartView, error) {
	if !owner.valid() {
		return nil, ErrInvalidParams
	}
	lock := s.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	if err := s.save(ctx, owner, cart.NewState()); err != nil {
		return nil, err
	}
	return s.view(cart.NewState()), nil
}

// MergeOnLogin 登录时合并匿名购物车到用户购物车。
// 以服务端购物车为基底，同商品数量相加后按库存收口；合并完成后丢弃会话快照。
func (s *CartService) MergeOnLogin(ctx context.Context, userID uint, sessionKey string) (*CartView, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	owner := UserOwner(userID)
	lock := s.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	server, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return s.view(server), nil
	}

	local := s.store.Load(ctx, sessionKey)
	merged := cart.Merge(server, local)
	if err := s.saveUser(userID, merged); err != nil {
		return nil, err
	}
	s.store.Drop(ctx, sessionKey)
	return s.view(merged), nil
}

// lockOwner 将归属锁借给同包内的跨多步流程（如下单），由调用方在流程结束时释放
func (s *CartService) lockOwner(owner CartOwner) func() {
	lock := s.ownerLock(owner)
	lock.Lock()
	return lock.Unlock
}

// ShippingFee 当前固定运费
func (s *CartService) ShippingFee() int64 {
	return s.cfg.ShippingFlatFee
}

func (s *CartService) engine(state *cart.State) *cart.Engine {
	return cart.NewEngine(state, s.cfg.ShippingFlatFee)
}

func (s *CartService) view(state *cart.State) *CartView {
	engine := s.engine(state)
	derived := engine.Derived()
	return &CartView{
		Items:     state.Lines(),
		ItemCount: derived.ItemCount,
		Subtotal:  models.MoneyFromCents(derived.Subtotal),
		Shipping:  models.MoneyFromCents(derived.Shipping),
		Total:     models.MoneyFromCents(derived.Total),
	}
}

func (s *CartService) load(ctx context.Context, owner CartOwner) (*cart.State, error) {
	if owner.UserID != 0 {
		return s.loadUser(owner.UserID)
	}
	return s.store.Load(ctx, owner.SessionKey), nil
}

func (s *CartService) save(ctx context.Context, owner CartOwner, state *cart.State) error {
	if owner.UserID != 0 {
		return s.saveUser(owner.UserID, state)
	}
	// 会话快照保存失败仅记录告警，不中断请求
	s.store.Save(ctx, owner.SessionKey, state)
	return nil
}

func (s *CartService) loadUser(userID uint) (*cart.State, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	lines := make([]cart.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, cart.Line{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Image:          item.Image,
			UnitPrice:      item.UnitPrice.Cents(),
			StockAvailable: item.StockAvailable,
			Quantity:       item.Quantity,
		})
	}
	return cart.NewStateFromLines(lines), nil
}

func (s *CartService) saveUser(userID uint, state *cart.State) error {
	lines := state.Lines()
	items := make([]models.CartItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.CartItem{
			UserID:         userID,
			ProductID:      line.ProductID,
			Name:           line.Name,
			Image:          line.Image,
			UnitPrice:      models.MoneyFromCents(line.UnitPrice),
			StockAvailable: line.StockAvailable,
			Quantity:       line.Quantity,
		})
	}
	return s.cartRepo.ReplaceByUser(userID, items)
}

func productInfo(product *models.Product) cart.ProductInfo {
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	return cart.ProductInfo{
		ID:    product.ID,
		Name:  product.Name,
		Image: image,
		Price: product.Price.Cents(),
		Stock: product.Stock,
	}
}
