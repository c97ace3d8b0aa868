package utils

import "testing"

func TestSnowflake_单调递增且节点越界报错(t *testing.T) {
	if _, err := NewSnowflake(maxNodeID + 1); err == nil {
		t.Fatalf("节点越界应报错")
	}
	s, err := NewSnowflake(3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	prev := s.NextID()
	for i := 0; i < 10000; i++ {
		id := s.NextID()
		if id <= prev {
			t.Fatalf("id 未递增: prev=%d id=%d", prev, id)
		}
		prev = id
	}
	if (prev>>nodeShift)&maxNodeID != 3 {
		t.Fatalf("节点位不对")
	}
}

func TestRandSeq_长度与字符集(t *testing.T) {
	got := RandSeq(16)
	if len(got) != 16 {
		t.Fatalf("长度不对: %d", len(got))
	}
	for _, c := range got {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			t.Fatalf("非法字符: %q", c)
		}
	}
	if RandSeq(0) != "" {
		t.Fatalf("n<=0 应返回空串")
	}
}
