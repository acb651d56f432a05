//go:build debug

package logx

func init() {
	global.level = LevelDebug
}
