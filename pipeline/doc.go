// Package pipeline ties parsing, version detection and profile validation
// together for files on disk.
//
// A Pipeline is safe for concurrent use. Each file is a fault boundary: a
// decode, reference or version failure is recorded on that file's
// [FileResult] and the rest of a batch still runs.
//
//	p, err := pipeline.New(pipeline.WithStrictness(validation.Lenient))
//	if err != nil {
//		return err
//	}
//	for _, r := range p.ValidateFiles(ctx, paths) {
//		if r.Err != nil {
//			log.Printf("%s: %v", r.Path, r.Err)
//			continue
//		}
//		fmt.Println(r.Path, r.Report.IsOk())
//	}
package pipeline
