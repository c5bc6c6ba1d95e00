package pagination

import "errors"

// 预定义错误.
var (
	// ErrInvalidLimit 每页数量必须大于 0.
	ErrInvalidLimit = errors.New("pagination: 每页数量无效")

	// ErrInvalidItems 总条数不能为负数.
	ErrInvalidItems = errors.New("pagination: 总条数无效")

	// ErrInvalidLinks 页码窗口大小为负数或超过 MaxLinks.
	ErrInvalidLinks = errors.New("pagination: 页码窗口大小无效")

	// ErrUnsetField 计算前必需字段未设置.
	ErrUnsetField = errors.New("pagination: 字段未设置")

	// ErrPageOutOfRange 页码超出范围.
	ErrPageOutOfRange = errors.New("pagination: 页码超出范围")

	// ErrInvalidSettings 分页设置无效.
	ErrInvalidSettings = errors.New("pagination: 分页设置无效")
)
