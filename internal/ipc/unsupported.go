//go:build !(linux && (amd64 || arm64 || riscv64 || loong64))

package ipc

// Region is unavailable on this platform.
type Region struct{}

func CreateRegion() (*Region, error)       { return nil, ErrUnsupported }
func AttachRegion(id int) (*Region, error) { return nil, ErrUnsupported }
func (r *Region) ID() int                  { return -1 }
func (r *Region) Counters() *Counters      { return nil }
func (r *Region) Detach() error            { return nil }
func (r *Region) Remove() error            { return nil }
func RegionExists(id int) bool             { return false }

// Semaphore is unavailable on this platform.
type Semaphore struct{}

func CreateSemaphore(initial int) (*Semaphore, error) { return nil, ErrUnsupported }
func OpenSemaphore(id int) *Semaphore                 { return &Semaphore{} }
func (s *Semaphore) ID() int                          { return -1 }
func (s *Semaphore) Acquire() error                   { return ErrUnsupported }
func (s *Semaphore) Release() error                   { return ErrUnsupported }
func (s *Semaphore) Value() (int, error)              { return 0, ErrUnsupported }
func (s *Semaphore) Remove() error                    { return nil }
func SemaphoreExists(id int) bool                     { return false }
