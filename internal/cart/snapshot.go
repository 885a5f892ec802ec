package cart

import (
	"encoding/json"
	"fmt"
)

// SnapshotVersion 持久化快照版本号
const SnapshotVersion = 1

// snapshot 持久化快照结构：仅序列化行项目，衍生值永不落盘
type snapshot struct {
	Version int    `json:"version"`
	Items   []Line `json:"items"`
}

// EncodeSnapshot 将状态编码为带版本号的 JSON 快照
func EncodeSnapshot(s *State) ([]byte, error) {
	if s == nil {
		s = NewState()
	}
	snap := snapshot{Version: SnapshotVersion, Items: s.Lines()}
	if snap.Items == nil {
		snap.Items = []Line{}
	}
	return json.Marshal(snap)
}

// DecodeSnapshot 解析快照。形状不符或版本未知时返回错误，
// 由存储层决定软失败策略（回退空购物车）。
func DecodeSnapshot(data []byte) (*State, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unknown cart snapshot version: %d", snap.Version)
	}
	return NewStateFromLines(snap.Items), nil
}
