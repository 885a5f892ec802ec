package cart

import "strings"

// CheckoutForm 结算页收集的收货与支付信息
type CheckoutForm struct {
	DeliveryAddress string `json:"delivery_address"`
	City            string `json:"city"`
	Region          string `json:"region"`
	Country         string `json:"country"`
	ContactPhone    string `json:"contact_phone"`
	PaymentMethod   string `json:"payment_method"`
	Note            string `json:"note,omitempty"`
}

// PayloadItem 订单载荷行项目（单价取自客户端快照，服务端下单时复核）
type PayloadItem struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// OrderPayload 订单提交载荷
type OrderPayload struct {
	BuyerID         uint          `json:"buyer_id"`
	Items           []PayloadItem `json:"items"`
	Subtotal        int64         `json:"subtotal"`
	ShippingFee     int64         `json:"shipping_fee"`
	Total           int64         `json:"total"`
	DeliveryAddress string        `json:"delivery_address"`
	City            string        `json:"city"`
	Region          string        `json:"region"`
	Country         string        `json:"country"`
	ContactPhone    string        `json:"contact_phone"`
	PaymentMethod   string        `json:"payment_method"`
	Note            string        `json:"note,omitempty"`
}

// AssembleOrder 从购物车状态与结算表单装配订单载荷。
// 空购物车返回 ErrEmptyCart；装配本身无任何副作用，
// 订单提交成功后由调用方负责清空购物车。
func AssembleOrder(buyerID uint, state *State, shippingFee int64, form CheckoutForm) (*OrderPayload, error) {
	if state == nil || state.Len() == 0 {
		return nil, ErrEmptyCart
	}
	payload := &OrderPayload{
		BuyerID:         buyerID,
		DeliveryAddress: strings.TrimSpace(form.DeliveryAddress),
		City:            strings.TrimSpace(form.City),
		Region:          strings.TrimSpace(form.Region),
		Country:         strings.TrimSpace(form.Country),
		ContactPhone:    strings.TrimSpace(form.ContactPhone),
		PaymentMethod:   strings.TrimSpace(form.PaymentMethod),
		Note:            strings.TrimSpace(form.Note),
	}
	for _, line := range state.Lines() {
		payload.Items = append(payload.Items, PayloadItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
		payload.Subtotal += int64(line.Quantity) * line.UnitPrice
	}
	if payload.Subtotal > 0 {
		payload.ShippingFee = shippingFee
	}
	payload.Total = payload.Subtotal + payload.ShippingFee
	return payload, nil
}
