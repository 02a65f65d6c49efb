package utils

import (
	"fmt"
	"math"
	"strings"
)

// EasingFunc 缓动函数类型
// 接受进度 t ∈ [0, 1]，返回缓动后的进度 ∈ [0, 1]
type EasingFunc func(t float64) float64

// Easing Functions (缓动函数)
//
// 开箱过程中的淡入淡出默认使用线性缓动；
// 其余曲线可以在配置文件中按名字选择。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// easingByName 配置文件中可用的缓动名称
var easingByName = map[string]EasingFunc{
	"linear":     EaseLinear,
	"inquad":     EaseInQuad,
	"outquad":    EaseOutQuad,
	"outcubic":   EaseOutCubic,
	"inoutcubic": EaseInOutCubic,
}

// ParseEasing 根据名称返回缓动函数（大小写、连字符不敏感）
// 空字符串返回线性缓动
func ParseEasing(name string) (EasingFunc, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	if key == "" {
		return EaseLinear, nil
	}
	fn, ok := easingByName[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
