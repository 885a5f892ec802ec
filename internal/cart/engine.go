package cart

import "errors"

// 引擎级错误（同步返回给调用方做用户提示）
var (
	// ErrOutOfStock 加购时商品库存为 0
	ErrOutOfStock = errors.New("商品库存不足")
	// ErrEmptyCart 空购物车不允许装配订单
	ErrEmptyCart = errors.New("购物车为空")
)

// ProductInfo 引擎依赖的最小商品形状，加购时快照进行项
type ProductInfo struct {
	ID    uint
	Name  string
	Image string
	Price int64 // 最小货币单位
	Stock int
}

// Line 购物车行项目。快照字段在加入后不再与商品表同步，
// 数量恒满足 1 <= Quantity <= StockAvailable。
type Line struct {
	ProductID      uint   `json:"product_id"`
	Name           string `json:"name"`
	Image          string `json:"image,omitempty"`
	UnitPrice      int64  `json:"unit_price"`
	StockAvailable int    `json:"stock_available"`
	Quantity       int    `json:"quantity"`
}

// State 购物车状态：按加入顺序排列、按商品唯一的行项目集合。
// 衍生值（数量合计/小计/运费/总计）永不入库，每次调用现算。
type State struct {
	lines []Line
	index map[uint]int
}

// NewState 创建空购物车状态
func NewState() *State {
	return &State{index: make(map[uint]int)}
}

// NewStateFromLines 从行项目序列重建状态（越界数量按不变量收口）
func NewStateFromLines(lines []Line) *State {
	s := NewState()
	for _, line := range lines {
		if line.ProductID == 0 || line.StockAvailable <= 0 {
			continue
		}
		if _, exists := s.index[line.ProductID]; exists {
			continue
		}
		line.Quantity = clampQuantity(line.Quantity, line.StockAvailable)
		s.index[line.ProductID] = len(s.lines)
		s.lines = append(s.lines, line)
	}
	return s
}

// Lines 返回行项目副本（保持加入顺序）
func (s *State) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len 返回行项目数量
func (s *State) Len() int {
	return len(s.lines)
}

// Get 按商品查找行项目
func (s *State) Get(productID uint) (Line, bool) {
	idx, ok := s.index[productID]
	if !ok {
		return Line{}, false
	}
	return s.lines[idx], true
}

// Derived 购物车衍生值
type Derived struct {
	ItemCount int   `json:"item_count"`
	Subtotal  int64 `json:"subtotal"`
	Shipping  int64 `json:"shipping"`
	Total     int64 `json:"total"`
}

// Engine 购物车引擎：状态的唯一持有者，所有变更经由引擎操作完成。
// 引擎本身不做任何 I/O，也不并发安全，调用方按会话串行化访问。
type Engine struct {
	state       *State
	shippingFee int64
}

// NewEngine 创建购物车引擎
func NewEngine(state *State, shippingFee int64) *Engine {
	if state == nil {
		state = NewState()
	}
	return &Engine{state: state, shippingFee: shippingFee}
}

// State 返回引擎持有的状态
func (e *Engine) State() *State {
	return e.state
}

// AddItem 加购：qty <= 0 不做任何事；传入商品库存为 0 时返回 ErrOutOfStock
// 且状态不变，购物车里已有该商品的行项目也一样拒绝。
// 通过校验后，已有行项目按其存储的库存快照（而非传入值）累加并钳制。
func (e *Engine) AddItem(product ProductInfo, qty int) error {
	if qty <= 0 {
		return nil
	}
	if product.Stock <= 0 {
		return ErrOutOfStock
	}
	if idx, ok := e.state.index[product.ID]; ok {
		line := &e.state.lines[idx]
		line.Quantity = clampQuantity(line.Quantity+qty, line.StockAvailable)
		return nil
	}
	line := Line{
		ProductID:      product.ID,
		Name:           product.Name,
		Image:          product.Image,
		UnitPrice:      product.Price,
		StockAvailable: product.Stock,
		Quantity:       clampQuantity(qty, product.Stock),
	}
	e.state.index[product.ID] = len(e.state.lines)
	e.state.lines = append(e.state.lines, line)
	return nil
}

// RemoveItem 删除行项目，不存在时为幂等空操作
func (e *Engine) RemoveItem(productID uint) {
	idx, ok := e.state.index[productID]
	if !ok {
		return
	}
	e.state.lines = append(e.state.lines[:idx], e.state.lines[idx+1:]...)
	delete(e.state.index, productID)
	for i := idx; i < len(e.state.lines); i++ {
		e.state.index[e.state.lines[i].ProductID] = i
	}
}

// SetQuantity 设置数量：行项目不存在时空操作；数量钳制到 [1, 库存快照]。
// 传入 qty <= 0 时收口为 1 而非删除行项目。
func (e *Engine) SetQuantity(productID uint, qty int) {
	idx, ok := e.state.index[productID]
	if !ok {
		return
	}
	line := &e.state.lines[idx]
	line.Quantity = clampQuantity(qty, line.StockAvailable)
}

// Clear 清空购物车
func (e *Engine) Clear() {
	e.state.lines = nil
	e.state.index = make(map[uint]int)
}

// MergeLocal 将匿名购物车并入当前状态（当前状态作为服务端基准）
func (e *Engine) MergeLocal(local *State) {
	e.state = Merge(e.state, local)
}

// Derived 现算衍生值：数量合计、小计、运费（小计大于 0 时收固定运费）、总计
func (e *Engine) Derived() Derived {
	var d Derived
	for _, line := range e.state.lines {
		d.ItemCount += line.Quantity
		d.Subtotal += int64(line.Quantity) * line.UnitPrice
	}
	if d.Subtotal > 0 {
		d.Shipping = e.shippingFee
	}
	d.Total = d.Subtotal + d.Shipping
	return d
}

func clampQuantity(qty, stock int) int {
	if qty < 1 {
		return 1
	}
	if stock > 0 && qty > stock {
		return stock
	}
	return qty
}
