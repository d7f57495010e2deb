package filename

// 点位标记相关字符
const (
	// MarkerOrdinal 序号前缀"第"
	MarkerOrdinal = '第'

	// MarkerCounter 可选量词"个"
	MarkerCounter = '个'

	// MarkerPoint 点位标记"点"
	MarkerPoint = '点'

	// MarkerPointSuffix 可选后缀"位"（"点位"）
	MarkerPointSuffix = '位'
)

// 噪声前缀分隔符
const (
	// separatorHyphen 连字符，连续两个及以上才构成分隔符
	separatorHyphen = '-'

	// separatorEmDash 破折号，单个即可构成分隔符
	separatorEmDash = '—'
)

// 输出格式
const (
	// GroupSeparator 组别与型号、型号与点位之间的分隔符
	GroupSeparator = "_"

	// PointPrefix 输出点位前缀
	PointPrefix = "第"

	// PointSuffix 输出点位后缀
	PointSuffix = "个点"
)
