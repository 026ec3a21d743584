package feature

// CDNAToGenomic converts a spliced cDNA position (1-based, counted from the
// transcript 5' end) to a genomic position. Returns 0 if the position falls
// outside the spliced transcript.
func (t *Transcript) CDNAToGenomic(pos int64) int64 {
	if pos < 1 {
		return 0
	}

	exons := t.SortedExons()
	var cumulative int64

	if t.IsForwardStrand() {
		for _, exon := range exons {
			exonLen := exon.End - exon.Start + 1
			if cumulative+exonLen >= pos {
				offset := pos - cumulative - 1
				return exon.Start + offset
			}
			cumulative += exonLen
		}
	} else {
		// Reverse strand: the transcript 5' end is the highest genomic
		// coordinate, so walk exons in descending genomic order.
		for i := len(exons) - 1; i >= 0; i-- {
			exon := exons[i]
			exonLen := exon.End - exon.Start + 1
			if cumulative+exonLen >= pos {
				offset := pos - cumulative - 1
				return exon.End - offset
			}
			cumulative += exonLen
		}
	}

	return 0
}

// GenomicToCDNA converts a genomic position to a spliced cDNA position
// (1-based from the transcript 5' end). Returns 0 if the position is not
// within an exon. This is the reverse of CDNAToGenomic.
func (t *Transcript) GenomicToCDNA(pos int64) int64 {
	exons := t.SortedExons()
	var cdnaPos int64

	if t.IsForwardStrand() {
		for _, exon := range exons {
			if pos >= exon.Start && pos <= exon.End {
				return cdnaPos + pos - exon.Start + 1
			}
			if pos > exon.End {
				cdnaPos += exon.End - exon.Start + 1
			}
		}
	} else {
		for i := len(exons) - 1; i >= 0; i-- {
			exon := exons[i]
			if pos >= exon.Start && pos <= exon.End {
				return cdnaPos + exon.End - pos + 1
			}
			if pos < exon.Start {
				cdnaPos += exon.End - exon.Start + 1
			}
		}
	}

	return 0
}
