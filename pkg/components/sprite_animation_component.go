package components

// SpriteAnimationComponent 精灵图帧动画的播放状态
//
// CurrentFrame 是相对于帧序列的下标（0 对应配置中的起始帧），
// 播放中或播放过之后始终满足 0 <= CurrentFrame < 帧数量。
// 只由 AnimationDriver 和开箱状态机修改。
type SpriteAnimationComponent struct {
	FrameRate    float64 // 每帧持续时间(秒)
	FrameTimer   float64 // 距离上次换帧已累计的时间(秒)
	CurrentFrame int     // 当前帧下标(0-based)
	IsPlaying    bool    // 是否正在播放
	IsLooping    bool    // 播放到末帧后是否回到首帧
}
