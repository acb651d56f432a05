//go:build trace

package logx

func init() {
	global.level = LevelTrace
}
