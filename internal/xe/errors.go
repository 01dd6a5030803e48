package xe

import "github.com/go-orz/orz"

var (
	ErrInvalidParams      = orz.NewError(10400, "参数无效")
	ErrInvalidToken       = orz.NewError(10403, "令牌无效")
	ErrAccountAlreadyUsed = orz.NewError(10000, "账户已被使用")
	ErrIncorrectPassword  = orz.NewError(10001, "账户或密码错误")

	ErrTradeNotFound         = orz.NewError(10404, "交易不存在")
	ErrTradeNotFoundOrClosed = orz.NewError(10405, "交易不存在或已平仓")
)
