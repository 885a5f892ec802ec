package cart

// Merge 登录时的购物车对账：以服务端购物车为基准，叠加本地（匿名）购物车。
//  1. 结果从服务端行项目副本出发；
//  2. 本地行项目若在结果中已有同商品行，数量相加并按该行的库存快照钳制；
//  3. 否则若本地行库存快照大于 0，按库存钳制后追加；
//  4. 本地零库存且无服务端对应行的项目静默丢弃。
//
// 服务端购物车代表登录身份的事实基准，本地匿名操作在其上做加法；
// 库存上限始终生效，最终售卖校验仍由下单时的服务端复核兜底。
func Merge(server, local *State) *State {
	if server == nil {
		server = NewState()
	}
	result := NewStateFromLines(server.Lines())
	if local == nil {
		return result
	}
	for _, l := range local.Lines() {
		if idx, ok := result.index[l.ProductID]; ok {
			r := &result.lines[idx]
			r.Quantity = clampQuantity(r.Quantity+l.Quantity, r.StockAvailable)
			continue
		}
		if l.StockAvailable <= 0 {
			continue
		}
		l.Quantity = clampQuantity(l.Quantity, l.StockAvailable)
		result.index[l.ProductID] = len(result.lines)
		result.lines = append(result.lines, l)
	}
	return result
}
