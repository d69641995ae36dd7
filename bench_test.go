package reap

import "testing"

func BenchmarkAddRelease(b *testing.B) {
	c := New(Options{})
	for i := 0; i < b.N; i++ {
		r := c.Add(&testNode{id: i})
		r.Release()
	}
}

func BenchmarkCollectReachable(b *testing.B) {
	c := New(Options{})

	root := c.AddRoot(&fanNode{name: "root"})
	rf := root.Data().(*fanNode)
	for i := 0; i < 1024; i++ {
		n := c.Add(&testNode{id: i})
		rf.edges = append(rf.edges, n.Clone())
		n.Release()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Collect()
	}
}

func BenchmarkCollectCycle(b *testing.B) {
	c := New(Options{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		x := c.Add(&testNode{id: i})
		y := c.Add(&testNode{id: i})
		link(x, y)
		link(y, x)
		x.Release()
		y.Release()
		b.StartTimer()

		c.Collect()
	}
}
